// Package pricecalc composes a resolved base price with the adjustments
// produced by registered processors into a final calculated price.
package pricecalc

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
)

// Processor supplies adjustments of a single type (tax, promotion, fee).
// Implementations are read-only collaborators; they must not retain or
// mutate their inputs.
type Processor interface {
	// AdjustmentType returns the adjustment type id this processor emits.
	AdjustmentType() string
	// Applies reports whether the processor is relevant for the purchasable.
	Applies(purchasable Purchasable) bool
	// Adjust returns raw adjustments for the base price, already scaled by
	// quantity. Amounts may be unrounded.
	Adjust(ctx context.Context, basePrice money.Price, purchasable Purchasable, quantity decimal.Decimal, calcCtx Context) ([]adjustment.Adjustment, error)
}

// Result is the outcome of a calculation. It is a fresh value per call.
type Result struct {
	basePrice       money.Price
	calculatedPrice money.Price
	adjustments     []adjustment.Adjustment
}

// BasePrice returns the resolved price before adjustments, scaled by quantity.
func (r Result) BasePrice() money.Price { return r.basePrice }

// CalculatedPrice returns the price after applying adjustments.
func (r Result) CalculatedPrice() money.Price { return r.calculatedPrice }

// Adjustments returns the combined, sorted adjustment breakdown.
func (r Result) Adjustments() []adjustment.Adjustment { return r.adjustments }

// Calculator runs the calculation pipeline: resolve, adjust, combine, sort.
type Calculator struct {
	Chain       Resolver
	Processors  []Processor
	Transformer adjustment.Transformer
}

// Calculate resolves the purchasable's base price and applies the processors
// whose adjustment type appears in adjustmentTypes. An empty filter, or one
// naming only unknown types, short-circuits to the base price. Included
// adjustments appear in the breakdown but are not added to the calculated
// price because their amount is already part of the base.
func (c *Calculator) Calculate(ctx context.Context, purchasable Purchasable, quantity decimal.Decimal, calcCtx Context, adjustmentTypes []string) (Result, error) {
	unitPrice, err := c.Chain.Resolve(ctx, purchasable, quantity, calcCtx)
	if err != nil {
		return Result{}, fmt.Errorf("resolve price: %w", err)
	}
	if unitPrice == nil {
		return Result{}, ErrNoPrice
	}
	basePrice := unitPrice.MultiplyDecimal(quantity)

	result := Result{basePrice: basePrice, calculatedPrice: basePrice}
	if len(adjustmentTypes) == 0 {
		return result, nil
	}
	wanted := make(map[string]bool, len(adjustmentTypes))
	for _, t := range adjustmentTypes {
		wanted[t] = true
	}

	var collected []adjustment.Adjustment
	for _, proc := range c.Processors {
		if !wanted[proc.AdjustmentType()] || !proc.Applies(purchasable) {
			continue
		}
		adjustments, err := proc.Adjust(ctx, basePrice, purchasable, quantity, calcCtx)
		if err != nil {
			return Result{}, fmt.Errorf("processor %s: %w", proc.AdjustmentType(), err)
		}
		collected = append(collected, adjustments...)
	}
	if len(collected) == 0 {
		return result, nil
	}

	combined, err := c.Transformer.Combine(collected)
	if err != nil {
		return Result{}, err
	}
	sorted := c.Transformer.Sort(combined)

	calculated := basePrice
	for _, a := range sorted {
		if a.IsIncluded() {
			continue
		}
		calculated, err = calculated.Add(a.Amount())
		if err != nil {
			return Result{}, err
		}
	}
	result.calculatedPrice = calculated
	result.adjustments = sorted
	return result, nil
}
