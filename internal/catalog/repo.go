package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// ErrNotFound indicates the requested product could not be located.
var ErrNotFound = errors.New("catalog: product not found")

// Repo loads products from Postgres.
type Repo struct {
	Pool *pgxpool.Pool
}

// Product returns the product by id.
func (r Repo) Product(ctx context.Context, id uuid.UUID) (Product, error) {
	if r.Pool == nil {
		return Product{}, errors.New("catalog: pool not configured")
	}
	const q = `
SELECT id, sku, title, price_number::text, currency_code
FROM products
WHERE id = $1`
	var (
		p            Product
		number       string
		currencyCode string
	)
	row := r.Pool.QueryRow(ctx, q, id)
	if err := row.Scan(&p.ID, &p.SKU, &p.Title, &number, &currencyCode); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	price, err := money.New(number, currencyCode)
	if err != nil {
		return Product{}, err
	}
	p.Price = price
	return p, nil
}
