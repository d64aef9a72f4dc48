// Package adjustment models priced modifiers (taxes, promotions, fees)
// applied on top of a base price, and the transformations that combine,
// order and round them.
package adjustment

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// ErrInvalidDefinition is returned when an adjustment definition fails validation.
var ErrInvalidDefinition = errors.New("adjustment: invalid definition")

// Definition carries the fields needed to build an Adjustment. Type, Label
// and Amount are required; the rest are optional.
type Definition struct {
	Type       string
	Label      string
	Amount     money.Price
	Percentage string
	SourceID   string
	Included   bool
	Locked     bool
}

// Adjustment is an immutable record of a single priced modifier. Instances
// are only created through New; a "changed" adjustment is a new value.
type Adjustment struct {
	adjType    string
	label      string
	amount     money.Price
	percentage string
	sourceID   string
	included   bool
	locked     bool
}

// New validates the definition against the registry and builds an Adjustment.
func New(def Definition, types *Registry) (Adjustment, error) {
	if def.Type == "" {
		return Adjustment{}, fmt.Errorf("%w: type is required", ErrInvalidDefinition)
	}
	if def.Label == "" {
		return Adjustment{}, fmt.Errorf("%w: label is required", ErrInvalidDefinition)
	}
	if def.Amount.CurrencyCode() == "" {
		return Adjustment{}, fmt.Errorf("%w: amount is required", ErrInvalidDefinition)
	}
	if !types.Has(def.Type) {
		return Adjustment{}, fmt.Errorf("%w: %q", ErrUnknownType, def.Type)
	}
	if def.Percentage != "" {
		if _, err := decimal.NewFromString(def.Percentage); err != nil {
			return Adjustment{}, fmt.Errorf("%w: percentage %q is not numeric", ErrInvalidDefinition, def.Percentage)
		}
	}
	return Adjustment{
		adjType:    def.Type,
		label:      def.Label,
		amount:     def.Amount,
		percentage: def.Percentage,
		sourceID:   def.SourceID,
		included:   def.Included,
		locked:     def.Locked,
	}, nil
}

// Type returns the adjustment type id.
func (a Adjustment) Type() string { return a.adjType }

// Label returns the display label.
func (a Adjustment) Label() string { return a.label }

// Amount returns the signed amount.
func (a Adjustment) Amount() money.Price { return a.amount }

// Percentage returns the decimal percentage string, or "" when absent.
func (a Adjustment) Percentage() string { return a.percentage }

// SourceID returns the opaque id of the originating configuration.
func (a Adjustment) SourceID() string { return a.sourceID }

// IsIncluded reports whether the amount is already part of the base price.
func (a Adjustment) IsIncluded() bool { return a.included }

// IsLocked reports whether the adjustment is protected from re-evaluation.
func (a Adjustment) IsLocked() bool { return a.locked }

// IsPositive reports whether the amount is greater than zero.
func (a Adjustment) IsPositive() bool { return a.amount.IsPositive() }

// IsNegative reports whether the amount is less than zero.
func (a Adjustment) IsNegative() bool { return a.amount.IsNegative() }

// Equal reports field-wise equality of two adjustments.
func (a Adjustment) Equal(b Adjustment) bool {
	return a.adjType == b.adjType &&
		a.label == b.label &&
		a.amount.Equal(b.amount) &&
		a.percentage == b.percentage &&
		a.sourceID == b.sourceID &&
		a.included == b.included &&
		a.locked == b.locked
}

// withAmount returns a copy carrying the given amount. All other fields are
// preserved; kept unexported so mutation stays inside the package.
func (a Adjustment) withAmount(amount money.Price) Adjustment {
	a.amount = amount
	return a
}
