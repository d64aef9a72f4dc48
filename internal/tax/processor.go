package tax

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
	"github.com/noah-isme/backend-pricing/internal/pricecalc"
)

// DataKeyZone is the pricecalc.Context data key naming the tax zone.
const DataKeyZone = "tax_zone"

// RateSource abstracts rate lookup so the processor can run against the
// Postgres repo or a fixture in tests.
type RateSource interface {
	RatesForZone(ctx context.Context, zone string) ([]Rate, error)
}

// Processor emits one "tax" adjustment per configured rate for the zone
// carried in the calculation context.
type Processor struct {
	Rates       RateSource
	DefaultZone string
	Types       *adjustment.Registry
}

// AdjustmentType implements pricecalc.Processor.
func (Processor) AdjustmentType() string { return "tax" }

// Applies implements pricecalc.Processor. All purchasables are taxable;
// exemption is modelled by the zone having no rates.
func (Processor) Applies(pricecalc.Purchasable) bool { return true }

// Adjust computes basePrice × percentage for every rate of the zone. The
// base price is already scaled by quantity, so the amounts are line-level.
func (p Processor) Adjust(ctx context.Context, basePrice money.Price, _ pricecalc.Purchasable, _ decimal.Decimal, calcCtx pricecalc.Context) ([]adjustment.Adjustment, error) {
	zone := calcCtx.StringData(DataKeyZone)
	if zone == "" {
		zone = p.DefaultZone
	}
	if zone == "" {
		return nil, nil
	}
	rates, err := p.Rates.RatesForZone(ctx, zone)
	if err != nil {
		return nil, err
	}
	adjustments := make([]adjustment.Adjustment, 0, len(rates))
	for _, rate := range rates {
		amount, err := basePrice.Multiply(rate.Percentage)
		if err != nil {
			return nil, err
		}
		a, err := adjustment.New(adjustment.Definition{
			Type:       "tax",
			Label:      rate.Label,
			Amount:     amount,
			Percentage: rate.Percentage,
			SourceID:   rate.SourceID(),
			Included:   rate.Included,
		}, p.Types)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, nil
}
