package order

import (
	"fmt"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
)

// Service recalculates order totals from stored adjustments.
type Service struct {
	Transformer adjustment.Transformer
	Rounding    money.RoundingMode
}

// RecalculateTotals rewrites every item total and the order total in place.
// Item and order adjustments are combined, rounded and sorted first, so the
// persisted breakdown is deterministic. Included adjustments stay in the
// breakdown but never add to a total.
func (s Service) RecalculateTotals(ord *Order) error {
	total, err := money.Zero(ord.CurrencyCode)
	if err != nil {
		return err
	}
	for i := range ord.Items {
		if err := s.recalculateItem(&ord.Items[i]); err != nil {
			return fmt.Errorf("item %s: %w", ord.Items[i].ID, err)
		}
		total, err = total.Add(ord.Items[i].TotalPrice)
		if err != nil {
			return err
		}
	}

	orderAdjustments, err := s.normalize(ord.Adjustments)
	if err != nil {
		return err
	}
	ord.Adjustments = orderAdjustments
	for _, a := range orderAdjustments {
		if a.IsIncluded() {
			continue
		}
		total, err = total.Add(a.Amount())
		if err != nil {
			return err
		}
	}
	ord.TotalPrice = total.Round(s.Rounding)
	return nil
}

func (s Service) recalculateItem(it *Item) error {
	normalized, err := s.normalize(it.Adjustments)
	if err != nil {
		return err
	}
	it.Adjustments = normalized

	total := it.Subtotal()
	for _, a := range normalized {
		if a.IsIncluded() {
			continue
		}
		total, err = total.Add(a.Amount())
		if err != nil {
			return err
		}
	}
	it.TotalPrice = total.Round(s.Rounding)
	return nil
}

func (s Service) normalize(adjustments []adjustment.Adjustment) ([]adjustment.Adjustment, error) {
	combined, err := s.Transformer.Combine(adjustments)
	if err != nil {
		return nil, err
	}
	rounded := s.Transformer.Round(combined, s.Rounding)
	return s.Transformer.Sort(rounded), nil
}
