// Package order persists orders whose items and totals carry adjustment
// breakdowns, and recalculates those totals from the stored adjustments.
package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
)

// ErrNotFound indicates the requested order could not be located.
var ErrNotFound = errors.New("order: not found")

// Item is a single order line. Adjustments are stored with the item and
// re-applied on every recalculation.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	Title       string
	Quantity    decimal.Decimal
	UnitPrice   money.Price
	Adjustments []adjustment.Adjustment
	TotalPrice  money.Price
}

// Subtotal returns unit price × quantity, before adjustments.
func (it Item) Subtotal() money.Price {
	return it.UnitPrice.MultiplyDecimal(it.Quantity)
}

// Order aggregates items plus order-level adjustments into a total price.
type Order struct {
	ID           uuid.UUID
	Number       string
	State        string
	CurrencyCode string
	Items        []Item
	Adjustments  []adjustment.Adjustment
	TotalPrice   money.Price
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
