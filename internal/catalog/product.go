package catalog

import (
	"github.com/google/uuid"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// Product is a sellable catalog entry. It satisfies pricecalc.Purchasable.
type Product struct {
	ID    uuid.UUID
	SKU   string
	Title string
	Price money.Price
}

// PurchasableID returns the product id.
func (p Product) PurchasableID() uuid.UUID { return p.ID }

// ListPrice returns the catalog list price.
func (p Product) ListPrice() *money.Price {
	price := p.Price
	return &price
}
