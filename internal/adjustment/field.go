package adjustment

import (
	"encoding/json"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// FieldValue is the persisted representation of an adjustment, stored as a
// JSONB list on orders and order items. Loading always goes back through New
// so stored data is re-validated against the registry.
type FieldValue struct {
	Type       string      `json:"type"`
	Label      string      `json:"label"`
	Amount     money.Price `json:"amount"`
	Percentage *string     `json:"percentage"`
	SourceID   *string     `json:"source_id"`
	Included   bool        `json:"included"`
	Locked     bool        `json:"locked"`
}

// FieldValue converts the adjustment to its persisted shape.
func (a Adjustment) FieldValue() FieldValue {
	fv := FieldValue{
		Type:     a.adjType,
		Label:    a.label,
		Amount:   a.amount,
		Included: a.included,
		Locked:   a.locked,
	}
	if a.percentage != "" {
		pct := a.percentage
		fv.Percentage = &pct
	}
	if a.sourceID != "" {
		src := a.sourceID
		fv.SourceID = &src
	}
	return fv
}

// FromFieldValue rebuilds an adjustment from its persisted shape.
func FromFieldValue(fv FieldValue, types *Registry) (Adjustment, error) {
	def := Definition{
		Type:     fv.Type,
		Label:    fv.Label,
		Amount:   fv.Amount,
		Included: fv.Included,
		Locked:   fv.Locked,
	}
	if fv.Percentage != nil {
		def.Percentage = *fv.Percentage
	}
	if fv.SourceID != nil {
		def.SourceID = *fv.SourceID
	}
	return New(def, types)
}

// MarshalList encodes a list of adjustments as the JSONB column payload.
func MarshalList(adjustments []Adjustment) ([]byte, error) {
	values := make([]FieldValue, len(adjustments))
	for i, a := range adjustments {
		values[i] = a.FieldValue()
	}
	return json.Marshal(values)
}

// UnmarshalList decodes a JSONB column payload into validated adjustments.
// Empty or NULL payloads yield an empty list.
func UnmarshalList(data []byte, types *Registry) ([]Adjustment, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var values []FieldValue
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	adjustments := make([]Adjustment, 0, len(values))
	for _, fv := range values {
		a, err := FromFieldValue(fv, types)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, nil
}
