// Package promotion supplies discount adjustments and distributes
// order-level promotions across order items.
package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// Promotion is a discount offer. Exactly one of Percentage or Amount is set:
// percentage promotions scale with the price, fixed promotions take a lump
// amount off (order-level fixed promotions are distributed across items).
type Promotion struct {
	ID         uuid.UUID
	Label      string
	Percentage string
	Amount     *money.Price
	StartsAt   *time.Time
	EndsAt     *time.Time
	OrderLevel bool
}

// ActiveAt reports whether the promotion window covers the instant.
func (p Promotion) ActiveAt(now time.Time) bool {
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}

// Repo loads promotions from Postgres.
type Repo struct {
	Pool *pgxpool.Pool
}

// ListActive returns promotions whose window covers now.
func (r Repo) ListActive(ctx context.Context, now time.Time) ([]Promotion, error) {
	if r.Pool == nil {
		return nil, errors.New("promotion: pool not configured")
	}
	const q = `
SELECT id, label, percentage, amount_number::text, currency_code, starts_at, ends_at, order_level
FROM promotions
WHERE (starts_at IS NULL OR starts_at <= $1)
  AND (ends_at IS NULL OR ends_at >= $1)
ORDER BY created_at`
	rows, err := r.Pool.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var promotions []Promotion
	for rows.Next() {
		var (
			p            Promotion
			percentage   *string
			amountNumber *string
			currencyCode *string
		)
		if err := rows.Scan(&p.ID, &p.Label, &percentage, &amountNumber, &currencyCode, &p.StartsAt, &p.EndsAt, &p.OrderLevel); err != nil {
			return nil, err
		}
		if percentage != nil {
			p.Percentage = *percentage
		}
		if amountNumber != nil && currencyCode != nil {
			amount, err := money.New(*amountNumber, *currencyCode)
			if err != nil {
				return nil, err
			}
			p.Amount = &amount
		}
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}
