// Package tax supplies tax adjustments from zone-scoped rate tables.
package tax

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Rate is a single tax rate inside a zone, e.g. the standard VAT rate.
// Percentage is a decimal fraction string ("0.2" for 20%); it stays a string
// end to end so no float representation error can creep in.
type Rate struct {
	ID         uuid.UUID
	TaxType    string
	Zone       string
	Code       string
	Label      string
	Percentage string
	Included   bool
}

// SourceID identifies the rate for adjustment combination: adjustments from
// the same tax type, zone and rate merge into one line.
func (r Rate) SourceID() string {
	return r.TaxType + "|" + r.Zone + "|" + r.Code
}

// Repo loads tax rates from Postgres.
type Repo struct {
	Pool *pgxpool.Pool
}

// RatesForZone returns all rates configured for the zone, in stable order.
func (r Repo) RatesForZone(ctx context.Context, zone string) ([]Rate, error) {
	if r.Pool == nil {
		return nil, errors.New("tax: pool not configured")
	}
	const q = `
SELECT id, tax_type, zone, code, label, percentage, included
FROM tax_rates
WHERE zone = $1
ORDER BY tax_type, code`
	rows, err := r.Pool.Query(ctx, q, zone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var rates []Rate
	for rows.Next() {
		var rate Rate
		if err := rows.Scan(&rate.ID, &rate.TaxType, &rate.Zone, &rate.Code, &rate.Label, &rate.Percentage, &rate.Included); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}
