package promotion

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-pricing/internal/adjustment"
	"github.com/noah-isme/backend-pricing/internal/money"
	"github.com/noah-isme/backend-pricing/internal/pricecalc"
)

type fixtureSource struct {
	promotions []Promotion
}

func (f fixtureSource) ListActive(context.Context, time.Time) ([]Promotion, error) {
	return f.promotions, nil
}

func TestAdjustEmitsLockedNegativeAdjustments(t *testing.T) {
	fixed := money.MustNew("2.00", "USD")
	p := Processor{
		Promotions: fixtureSource{promotions: []Promotion{
			{ID: uuid.New(), Label: "10% off", Percentage: "0.1"},
			{ID: uuid.New(), Label: "2 off", Amount: &fixed},
		}},
		Types: adjustment.DefaultRegistry(),
	}

	base := money.MustNew("50.00", "USD")
	adjustments, err := p.Adjust(context.Background(), base, nil, decimal.NewFromInt(1), pricecalc.NewContext("default"))
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if len(adjustments) != 2 {
		t.Fatalf("got %d adjustments, want 2", len(adjustments))
	}
	if got := adjustments[0].Amount().Number(); got != "-5" {
		t.Fatalf("percentage promo = %s, want -5", got)
	}
	if got := adjustments[1].Amount().Number(); got != "-2" {
		t.Fatalf("fixed promo = %s, want -2", got)
	}
	for _, a := range adjustments {
		if !a.IsLocked() || !a.IsNegative() {
			t.Fatalf("promotion adjustments must be locked and negative: %+v", a)
		}
	}
}

func TestAdjustSkipsOrderLevelAndForeignCurrency(t *testing.T) {
	eur := money.MustNew("2.00", "EUR")
	orderAmount := money.MustNew("5.00", "USD")
	p := Processor{
		Promotions: fixtureSource{promotions: []Promotion{
			{ID: uuid.New(), Label: "order level", Amount: &orderAmount, OrderLevel: true},
			{ID: uuid.New(), Label: "euro only", Amount: &eur},
		}},
		Types: adjustment.DefaultRegistry(),
	}

	adjustments, err := p.Adjust(context.Background(), money.MustNew("10.00", "USD"), nil, decimal.NewFromInt(1), pricecalc.NewContext("default"))
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if len(adjustments) != 0 {
		t.Fatalf("expected no adjustments, got %d", len(adjustments))
	}
}

func TestActiveAtWindow(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	open := Promotion{Label: "always"}
	if !open.ActiveAt(now) {
		t.Fatalf("promotion without a window should always be active")
	}

	windowed := Promotion{Label: "windowed", StartsAt: &past, EndsAt: &future}
	if !windowed.ActiveAt(now) {
		t.Fatalf("promotion inside its window should be active")
	}

	expired := Promotion{Label: "expired", EndsAt: &past}
	if expired.ActiveAt(now) {
		t.Fatalf("expired promotion should be inactive")
	}

	upcoming := Promotion{Label: "upcoming", StartsAt: &future}
	if upcoming.ActiveAt(now) {
		t.Fatalf("future promotion should be inactive")
	}
}
