package promotion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
	"github.com/noah-isme/backend-pricing/internal/pricecalc"
)

// Source abstracts promotion lookup for the processor.
type Source interface {
	ListActive(ctx context.Context, now time.Time) ([]Promotion, error)
}

// Processor emits negative "promotion" adjustments for every active
// item-level promotion. Order-level promotions are skipped here; the
// Distributor spreads those across order items instead.
type Processor struct {
	Promotions Source
	Types      *adjustment.Registry
}

// AdjustmentType implements pricecalc.Processor.
func (Processor) AdjustmentType() string { return "promotion" }

// Applies implements pricecalc.Processor.
func (Processor) Applies(pricecalc.Purchasable) bool { return true }

// Adjust returns one locked negative adjustment per applicable promotion.
// Fixed promotions in a different currency than the base price are skipped.
func (p Processor) Adjust(ctx context.Context, basePrice money.Price, _ pricecalc.Purchasable, _ decimal.Decimal, calcCtx pricecalc.Context) ([]adjustment.Adjustment, error) {
	promotions, err := p.Promotions.ListActive(ctx, calcCtx.Time)
	if err != nil {
		return nil, err
	}
	var adjustments []adjustment.Adjustment
	for _, promo := range promotions {
		if promo.OrderLevel || !promo.ActiveAt(calcCtx.Time) {
			continue
		}
		var amount money.Price
		switch {
		case promo.Percentage != "":
			amount, err = basePrice.Multiply(promo.Percentage)
			if err != nil {
				return nil, err
			}
		case promo.Amount != nil:
			if promo.Amount.CurrencyCode() != basePrice.CurrencyCode() {
				continue
			}
			amount = *promo.Amount
		default:
			continue
		}
		a, err := adjustment.New(adjustment.Definition{
			Type:       "promotion",
			Label:      promo.Label,
			Amount:     amount.Negate(),
			Percentage: promo.Percentage,
			SourceID:   promo.ID.String(),
			Locked:     true,
		}, p.Types)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, nil
}
