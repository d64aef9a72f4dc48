package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
)

// Repo persists orders in Postgres. Price amounts are stored as numeric
// columns paired with the order currency; adjustment breakdowns live in
// JSONB columns using the adjustment.FieldValue shape.
type Repo struct {
	Pool  *pgxpool.Pool
	Types *adjustment.Registry
}

// Get loads the order and its items.
func (r Repo) Get(ctx context.Context, id uuid.UUID) (Order, error) {
	if r.Pool == nil {
		return Order{}, errors.New("order: pool not configured")
	}
	const orderQ = `
SELECT id, number, state, currency_code, total_number::text, adjustments, created_at, updated_at
FROM orders
WHERE id = $1`
	var (
		ord         Order
		totalNumber string
		adjRaw      []byte
	)
	row := r.Pool.QueryRow(ctx, orderQ, id)
	if err := row.Scan(&ord.ID, &ord.Number, &ord.State, &ord.CurrencyCode, &totalNumber, &adjRaw, &ord.CreatedAt, &ord.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	total, err := money.New(totalNumber, ord.CurrencyCode)
	if err != nil {
		return Order{}, err
	}
	ord.TotalPrice = total
	ord.Adjustments, err = adjustment.UnmarshalList(adjRaw, r.Types)
	if err != nil {
		return Order{}, fmt.Errorf("order %s adjustments: %w", id, err)
	}

	const itemsQ = `
SELECT id, order_id, product_id, title, quantity::text, unit_number::text, total_number::text, adjustments
FROM order_items
WHERE order_id = $1
ORDER BY created_at, id`
	rows, err := r.Pool.Query(ctx, itemsQ, id)
	if err != nil {
		return Order{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			it         Item
			qty        string
			unitNumber string
			itemTotal  string
			itemAdjRaw []byte
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Title, &qty, &unitNumber, &itemTotal, &itemAdjRaw); err != nil {
			return Order{}, err
		}
		if it.Quantity, err = parseDecimal(qty); err != nil {
			return Order{}, err
		}
		if it.UnitPrice, err = money.New(unitNumber, ord.CurrencyCode); err != nil {
			return Order{}, err
		}
		if it.TotalPrice, err = money.New(itemTotal, ord.CurrencyCode); err != nil {
			return Order{}, err
		}
		if it.Adjustments, err = adjustment.UnmarshalList(itemAdjRaw, r.Types); err != nil {
			return Order{}, fmt.Errorf("item %s adjustments: %w", it.ID, err)
		}
		ord.Items = append(ord.Items, it)
	}
	return ord, rows.Err()
}

// Create inserts the order and its items in one transaction.
func (r Repo) Create(ctx context.Context, ord *Order) error {
	if r.Pool == nil {
		return errors.New("order: pool not configured")
	}
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	adjRaw, err := adjustment.MarshalList(ord.Adjustments)
	if err != nil {
		return err
	}
	const orderQ = `
INSERT INTO orders (id, number, state, currency_code, total_number, adjustments)
VALUES ($1, $2, $3, $4, $5::numeric, $6)`
	if _, err := tx.Exec(ctx, orderQ, ord.ID, ord.Number, ord.State, ord.CurrencyCode, ord.TotalPrice.Number(), adjRaw); err != nil {
		return err
	}
	const itemQ = `
INSERT INTO order_items (id, order_id, product_id, title, quantity, unit_number, total_number, adjustments)
VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8)`
	for _, it := range ord.Items {
		itemAdjRaw, err := adjustment.MarshalList(it.Adjustments)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, itemQ, it.ID, ord.ID, it.ProductID, it.Title,
			it.Quantity.String(), it.UnitPrice.Number(), it.TotalPrice.Number(), itemAdjRaw); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// UpdateTotals persists recalculated totals and adjustment breakdowns.
func (r Repo) UpdateTotals(ctx context.Context, ord *Order) error {
	if r.Pool == nil {
		return errors.New("order: pool not configured")
	}
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	adjRaw, err := adjustment.MarshalList(ord.Adjustments)
	if err != nil {
		return err
	}
	const orderQ = `
UPDATE orders
SET total_number = $2::numeric, adjustments = $3, updated_at = now()
WHERE id = $1`
	tag, err := tx.Exec(ctx, orderQ, ord.ID, ord.TotalPrice.Number(), adjRaw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	const itemQ = `
UPDATE order_items
SET total_number = $2::numeric, adjustments = $3
WHERE id = $1`
	for _, it := range ord.Items {
		itemAdjRaw, err := adjustment.MarshalList(it.Adjustments)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, itemQ, it.ID, it.TotalPrice.Number(), itemAdjRaw); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
