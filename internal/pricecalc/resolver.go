package pricecalc

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// ErrNoPrice is returned when no resolver in the chain produced a price.
var ErrNoPrice = errors.New("pricecalc: no price resolved")

// Purchasable is anything that can be priced: products, variations, plans.
type Purchasable interface {
	PurchasableID() uuid.UUID
	ListPrice() *money.Price
}

// Resolver resolves the unit price of a purchasable for a given quantity and
// calculation context. Returning (nil, nil) passes resolution to the next
// resolver in the chain.
type Resolver interface {
	Resolve(ctx context.Context, purchasable Purchasable, quantity decimal.Decimal, calcCtx Context) (*money.Price, error)
}

// ChainResolver walks its resolvers in order; the first non-nil price wins.
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver builds a chain over the given resolvers.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

// Resolve implements Resolver.
func (c *ChainResolver) Resolve(ctx context.Context, purchasable Purchasable, quantity decimal.Decimal, calcCtx Context) (*money.Price, error) {
	for _, r := range c.resolvers {
		price, err := r.Resolve(ctx, purchasable, quantity, calcCtx)
		if err != nil {
			return nil, err
		}
		if price != nil {
			return price, nil
		}
	}
	return nil, nil
}

// DefaultResolver resolves to the purchasable's own list price. It is the
// tail of every chain.
type DefaultResolver struct{}

// Resolve implements Resolver.
func (DefaultResolver) Resolve(_ context.Context, purchasable Purchasable, _ decimal.Decimal, _ Context) (*money.Price, error) {
	return purchasable.ListPrice(), nil
}
