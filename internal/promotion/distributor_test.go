package promotion

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
	"github.com/noah-isme/backend-pricing/internal/order"
	"github.com/noah-isme/backend-pricing/internal/pricesplit"
)

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	return &order.Order{
		ID:           uuid.New(),
		CurrencyCode: "USD",
		Items: []order.Item{
			{ID: uuid.New(), Quantity: decimal.NewFromInt(3), UnitPrice: money.MustNew("9.99", "USD")},
			{ID: uuid.New(), Quantity: decimal.NewFromInt(1), UnitPrice: money.MustNew("3.03", "USD")},
		},
	}
}

func fixedPromo(amount string) Promotion {
	p := money.MustNew(amount, "USD")
	return Promotion{ID: uuid.New(), Label: "5 off", Amount: &p, OrderLevel: true}
}

func TestApplyDistributesBySubtotal(t *testing.T) {
	d := Distributor{
		Splitter: pricesplit.Splitter{Rounding: money.RoundHalfUp},
		Types:    adjustment.DefaultRegistry(),
	}
	ord := testOrder(t)
	promo := fixedPromo("5.00")

	if err := d.Apply(ord, promo); err != nil {
		t.Fatalf("apply: %v", err)
	}

	first := ord.Items[0].Adjustments
	second := ord.Items[1].Adjustments
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("each item should carry one adjustment, got %d and %d", len(first), len(second))
	}
	if got := first[0].Amount().Number(); got != "-4.54" {
		t.Fatalf("first share = %s, want -4.54", got)
	}
	if got := second[0].Amount().Number(); got != "-0.46" {
		t.Fatalf("second share = %s, want -0.46", got)
	}
	if !first[0].IsLocked() || first[0].Type() != "promotion" {
		t.Fatalf("distributed adjustment not a locked promotion: %+v", first[0])
	}
	if first[0].SourceID() != promo.ID.String() {
		t.Fatalf("source id = %s, want promotion id", first[0].SourceID())
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	d := Distributor{
		Splitter: pricesplit.Splitter{Rounding: money.RoundHalfUp},
		Types:    adjustment.DefaultRegistry(),
	}
	ord := testOrder(t)
	promo := fixedPromo("5.00")

	if err := d.Apply(ord, promo); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := d.Apply(ord, promo); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if len(ord.Items[0].Adjustments) != 1 {
		t.Fatalf("repeated apply stacked adjustments: %d", len(ord.Items[0].Adjustments))
	}
}

func TestApplyRejectsNonDistributable(t *testing.T) {
	d := Distributor{Types: adjustment.DefaultRegistry()}
	ord := testOrder(t)

	itemLevel := fixedPromo("5.00")
	itemLevel.OrderLevel = false
	if err := d.Apply(ord, itemLevel); !errors.Is(err, ErrNotDistributable) {
		t.Fatalf("expected ErrNotDistributable for item-level promo, got %v", err)
	}

	percentOnly := Promotion{ID: uuid.New(), Label: "10%", Percentage: "0.1", OrderLevel: true}
	if err := d.Apply(ord, percentOnly); !errors.Is(err, ErrNotDistributable) {
		t.Fatalf("expected ErrNotDistributable without a fixed amount, got %v", err)
	}
}

func TestApplyEmptyOrderIsNoop(t *testing.T) {
	d := Distributor{Types: adjustment.DefaultRegistry()}
	ord := &order.Order{ID: uuid.New(), CurrencyCode: "USD"}
	if err := d.Apply(ord, fixedPromo("5.00")); err != nil {
		t.Fatalf("apply on empty order: %v", err)
	}
}
