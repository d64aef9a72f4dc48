package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrCurrencyMismatch is returned when arithmetic mixes two currencies.
var ErrCurrencyMismatch = errors.New("money: currency mismatch")

// ErrUnknownCurrency is returned when a price references an unregistered currency code.
var ErrUnknownCurrency = errors.New("money: unknown currency")

// ErrInvalidNumber is returned when an amount string cannot be parsed as a decimal.
var ErrInvalidNumber = errors.New("money: invalid number")

// RoundingMode selects how ties at the midpoint are resolved.
type RoundingMode int

const (
	// RoundHalfUp rounds halves away from zero. This is the default mode.
	RoundHalfUp RoundingMode = iota
	// RoundHalfDown rounds halves toward zero.
	RoundHalfDown
	// RoundHalfEven rounds halves to the nearest even digit (banker's rounding).
	RoundHalfEven
)

// Price is an immutable amount of money in a single currency. Amounts are
// exact decimals; floats never enter the representation.
type Price struct {
	amount       decimal.Decimal
	currencyCode string
}

// New builds a price from a decimal number string and a currency code.
func New(number, currencyCode string) (Price, error) {
	amount, err := decimal.NewFromString(number)
	if err != nil {
		return Price{}, fmt.Errorf("%w: %q", ErrInvalidNumber, number)
	}
	if !KnownCurrency(currencyCode) {
		return Price{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, currencyCode)
	}
	return Price{amount: amount, currencyCode: currencyCode}, nil
}

// MustNew is New but panics on error. Intended for literals in tests and seeds.
func MustNew(number, currencyCode string) Price {
	p, err := New(number, currencyCode)
	if err != nil {
		panic(err)
	}
	return p
}

// Zero returns the zero price in the given currency.
func Zero(currencyCode string) (Price, error) {
	return New("0", currencyCode)
}

// Number returns the amount as a canonical decimal string.
func (p Price) Number() string {
	return p.amount.String()
}

// Decimal returns the underlying decimal amount.
func (p Price) Decimal() decimal.Decimal {
	return p.amount
}

// CurrencyCode returns the ISO 4217 currency code.
func (p Price) CurrencyCode() string {
	return p.currencyCode
}

func (p Price) assertSameCurrency(q Price) error {
	if p.currencyCode != q.currencyCode {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, p.currencyCode, q.currencyCode)
	}
	return nil
}

// Add returns p + q. Both prices must share a currency.
func (p Price) Add(q Price) (Price, error) {
	if err := p.assertSameCurrency(q); err != nil {
		return Price{}, err
	}
	return Price{amount: p.amount.Add(q.amount), currencyCode: p.currencyCode}, nil
}

// Subtract returns p - q. Both prices must share a currency.
func (p Price) Subtract(q Price) (Price, error) {
	if err := p.assertSameCurrency(q); err != nil {
		return Price{}, err
	}
	return Price{amount: p.amount.Sub(q.amount), currencyCode: p.currencyCode}, nil
}

// Multiply returns p scaled by the given decimal number string.
func (p Price) Multiply(number string) (Price, error) {
	factor, err := decimal.NewFromString(number)
	if err != nil {
		return Price{}, fmt.Errorf("%w: %q", ErrInvalidNumber, number)
	}
	return p.MultiplyDecimal(factor), nil
}

// MultiplyDecimal returns p scaled by the given decimal.
func (p Price) MultiplyDecimal(factor decimal.Decimal) Price {
	return Price{amount: p.amount.Mul(factor), currencyCode: p.currencyCode}
}

// Divide returns p divided by the given decimal number string.
func (p Price) Divide(number string) (Price, error) {
	divisor, err := decimal.NewFromString(number)
	if err != nil {
		return Price{}, fmt.Errorf("%w: %q", ErrInvalidNumber, number)
	}
	if divisor.IsZero() {
		return Price{}, fmt.Errorf("%w: division by zero", ErrInvalidNumber)
	}
	return Price{amount: p.amount.Div(divisor), currencyCode: p.currencyCode}, nil
}

// Negate returns the price with the opposite sign.
func (p Price) Negate() Price {
	return Price{amount: p.amount.Neg(), currencyCode: p.currencyCode}
}

// Round rounds the amount to the currency's minor-unit precision.
// Unknown modes fall back to half-up.
func (p Price) Round(mode RoundingMode) Price {
	digits := int32(2)
	if c, err := CurrencyFor(p.currencyCode); err == nil {
		digits = c.FractionDigits
	}
	return Price{amount: roundHalf(p.amount, digits, mode), currencyCode: p.currencyCode}
}

var half = decimal.New(5, -1)

func roundHalf(d decimal.Decimal, places int32, mode RoundingMode) decimal.Decimal {
	switch mode {
	case RoundHalfDown:
		neg := d.IsNegative()
		shifted := d.Abs().Shift(places)
		floor := shifted.Floor()
		if shifted.Sub(floor).Cmp(half) > 0 {
			floor = floor.Add(decimal.New(1, 0))
		}
		out := floor.Shift(-places)
		if neg {
			out = out.Neg()
		}
		return out
	case RoundHalfEven:
		return d.RoundBank(places)
	default:
		// decimal.Round is half away from zero.
		return d.Round(places)
	}
}

// Equal reports whether two prices carry the same amount and currency.
func (p Price) Equal(q Price) bool {
	return p.currencyCode == q.currencyCode && p.amount.Equal(q.amount)
}

// Compare returns -1, 0 or 1 ordering p against q.
func (p Price) Compare(q Price) (int, error) {
	if err := p.assertSameCurrency(q); err != nil {
		return 0, err
	}
	return p.amount.Cmp(q.amount), nil
}

// IsPositive reports whether the amount is greater than zero.
func (p Price) IsPositive() bool { return p.amount.IsPositive() }

// IsNegative reports whether the amount is less than zero.
func (p Price) IsNegative() bool { return p.amount.IsNegative() }

// IsZero reports whether the amount equals zero.
func (p Price) IsZero() bool { return p.amount.IsZero() }

// String renders the price for logs, e.g. "20.55 USD".
func (p Price) String() string {
	return p.amount.String() + " " + p.currencyCode
}

type priceJSON struct {
	Number       string `json:"number"`
	CurrencyCode string `json:"currency_code"`
}

// MarshalJSON encodes the persisted wire shape {"number", "currency_code"}.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(priceJSON{Number: p.amount.String(), CurrencyCode: p.currencyCode})
}

// UnmarshalJSON decodes and validates the persisted wire shape.
func (p *Price) UnmarshalJSON(data []byte) error {
	var raw priceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := New(raw.Number, raw.CurrencyCode)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
