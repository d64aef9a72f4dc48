// Package pricesplit distributes a lump amount across weighted lines, e.g.
// an order-level discount spread over order items proportionally to their
// subtotals, while guaranteeing the shares sum to the target exactly.
package pricesplit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// ErrZeroTotal is returned when the lines sum to zero but a non-zero target
// must be distributed and no explicit percentage was supplied.
var ErrZeroTotal = errors.New("pricesplit: line amounts sum to zero")

// Line is one weighted participant of a split, keyed so callers can map the
// resulting share back to its order item.
type Line struct {
	Key    string
	Amount money.Price
}

// Splitter proportionally distributes a target amount across lines.
type Splitter struct {
	Rounding money.RoundingMode
}

// Split returns each line's share of target, keyed by line key. Shares are
// the line amount scaled by percentage (derived as target/sum(amounts) when
// empty) and rounded to currency precision; the last line in input order
// absorbs the rounding residual so the shares always sum to target exactly.
// An empty line list yields an empty map.
func (s Splitter) Split(lines []Line, target money.Price, percentage string) (map[string]money.Price, error) {
	shares := make(map[string]money.Price, len(lines))
	if len(lines) == 0 {
		return shares, nil
	}
	for _, line := range lines {
		if line.Amount.CurrencyCode() != target.CurrencyCode() {
			return nil, fmt.Errorf("%w: line %q is %s, target is %s",
				money.ErrCurrencyMismatch, line.Key, line.Amount.CurrencyCode(), target.CurrencyCode())
		}
	}

	pct, err := s.resolvePercentage(lines, target, percentage)
	if err != nil {
		return nil, err
	}

	remainder := target
	for i, line := range lines {
		if i == len(lines)-1 {
			shares[line.Key] = remainder
			break
		}
		share := line.Amount.MultiplyDecimal(pct).Round(s.Rounding)
		shares[line.Key] = share
		remainder, err = remainder.Subtract(share)
		if err != nil {
			return nil, err
		}
	}
	return shares, nil
}

func (s Splitter) resolvePercentage(lines []Line, target money.Price, percentage string) (decimal.Decimal, error) {
	if percentage != "" {
		pct, err := decimal.NewFromString(percentage)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %q", money.ErrInvalidNumber, percentage)
		}
		return pct, nil
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount.Decimal())
	}
	if total.IsZero() {
		if target.IsZero() {
			return decimal.Zero, nil
		}
		return decimal.Decimal{}, ErrZeroTotal
	}
	return target.Decimal().Div(total), nil
}
