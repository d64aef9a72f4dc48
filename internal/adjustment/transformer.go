package adjustment

import (
	"sort"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// Transformer combines, orders and rounds adjustment collections so that the
// final breakdown is deterministic regardless of processor evaluation order.
type Transformer struct {
	Types *Registry
}

// Combine merges adjustments that share a type and a non-empty source id into
// a single adjustment whose amount is the sum of the group. Adjustments with
// an empty source id are never merged, even when their types match. Groups
// keep the order in which their key was first seen.
func (t Transformer) Combine(adjustments []Adjustment) ([]Adjustment, error) {
	combined := make([]Adjustment, 0, len(adjustments))
	index := make(map[string]int, len(adjustments))
	for _, a := range adjustments {
		if a.SourceID() == "" {
			combined = append(combined, a)
			continue
		}
		key := a.Type() + "|" + a.SourceID()
		i, seen := index[key]
		if !seen {
			index[key] = len(combined)
			combined = append(combined, a)
			continue
		}
		sum, err := combined[i].Amount().Add(a.Amount())
		if err != nil {
			return nil, err
		}
		combined[i] = combined[i].withAmount(sum)
	}
	return combined, nil
}

// Sort orders adjustments by the weight of their type. The sort is stable:
// adjustments of the same type keep their relative order.
func (t Transformer) Sort(adjustments []Adjustment) []Adjustment {
	sorted := make([]Adjustment, len(adjustments))
	copy(sorted, adjustments)
	sort.SliceStable(sorted, func(i, j int) bool {
		wi, _ := t.Types.Weight(sorted[i].Type())
		wj, _ := t.Types.Weight(sorted[j].Type())
		return wi < wj
	})
	return sorted
}

// RoundAdjustment rounds the amount to the currency's minor-unit precision
// and returns a new adjustment; every other field is untouched.
func (t Transformer) RoundAdjustment(a Adjustment, mode money.RoundingMode) Adjustment {
	return a.withAmount(a.Amount().Round(mode))
}

// Round applies RoundAdjustment to every element of the list.
func (t Transformer) Round(adjustments []Adjustment, mode money.RoundingMode) []Adjustment {
	rounded := make([]Adjustment, len(adjustments))
	for i, a := range adjustments {
		rounded[i] = t.RoundAdjustment(a, mode)
	}
	return rounded
}
