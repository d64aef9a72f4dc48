// Package pricing exposes the calculation pipeline over HTTP with a Redis
// cache in front of it.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/catalog"
	"github.com/noah-isme/backend-pricing/internal/money"
	"github.com/noah-isme/backend-pricing/internal/obs"
	"github.com/noah-isme/backend-pricing/internal/pricecalc"
)

// ErrProductNotFound maps catalog misses to the HTTP layer.
var ErrProductNotFound = errors.New("pricing: product not found")

// ProductSource loads purchasables for calculation requests.
type ProductSource interface {
	Product(ctx context.Context, id uuid.UUID) (catalog.Product, error)
}

// CalculateInput is a single calculation request.
type CalculateInput struct {
	ProductID       uuid.UUID
	Quantity        decimal.Decimal
	AdjustmentTypes []string
	TaxZone         string
}

// CalculateOutput is the calculation breakdown returned to callers.
type CalculateOutput struct {
	BasePrice       money.Price             `json:"basePrice"`
	CalculatedPrice money.Price             `json:"calculatedPrice"`
	Adjustments     []adjustment.FieldValue `json:"adjustments"`
}

// Service runs calculations against the catalog with a cache in front.
type Service struct {
	Products     ProductSource
	Calc         *pricecalc.Calculator
	Cache        *Cache
	DefaultStore string
}

// Calculate resolves the product and runs the calculation pipeline. Results
// are cached per product, quantity, zone and adjustment-type filter.
func (s *Service) Calculate(ctx context.Context, in CalculateInput) (CalculateOutput, error) {
	if s == nil || s.Products == nil || s.Calc == nil {
		return CalculateOutput{}, errors.New("pricing: service not configured")
	}
	key := cacheKey(in)
	var cached CalculateOutput
	if ok, err := s.Cache.Get(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}

	start := time.Now()
	out, err := s.calculate(ctx, in)
	if obs.PriceCalcDuration != nil {
		obs.PriceCalcDuration.Observe(obs.DurationMillis(time.Since(start)))
	}
	if err != nil {
		if obs.PriceCalcTotal != nil {
			obs.PriceCalcTotal.WithLabelValues("error").Inc()
		}
		return CalculateOutput{}, err
	}
	if obs.PriceCalcTotal != nil {
		obs.PriceCalcTotal.WithLabelValues("ok").Inc()
	}
	_ = s.Cache.Set(ctx, key, out)
	return out, nil
}

func (s *Service) calculate(ctx context.Context, in CalculateInput) (CalculateOutput, error) {
	product, err := s.Products.Product(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return CalculateOutput{}, ErrProductNotFound
		}
		return CalculateOutput{}, err
	}

	calcCtx := pricecalc.NewContext(s.DefaultStore)
	if in.TaxZone != "" {
		calcCtx = calcCtx.WithData("tax_zone", in.TaxZone)
	}
	result, err := s.Calc.Calculate(ctx, product, in.Quantity, calcCtx, in.AdjustmentTypes)
	if err != nil {
		return CalculateOutput{}, err
	}

	out := CalculateOutput{
		BasePrice:       result.BasePrice(),
		CalculatedPrice: result.CalculatedPrice(),
		Adjustments:     make([]adjustment.FieldValue, 0, len(result.Adjustments())),
	}
	for _, a := range result.Adjustments() {
		out.Adjustments = append(out.Adjustments, a.FieldValue())
	}
	return out, nil
}

func cacheKey(in CalculateInput) string {
	types := make([]string, len(in.AdjustmentTypes))
	copy(types, in.AdjustmentTypes)
	sort.Strings(types)
	return fmt.Sprintf("price:%s:%s:%s:%s", in.ProductID, in.Quantity, in.TaxZone, strings.Join(types, ","))
}
