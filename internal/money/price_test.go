package money

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New("abc", "USD"); !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber, got %v", err)
	}
	if _, err := New("1.00", "XXX"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
	if _, err := New("1.00", "usd"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("currency codes are case sensitive, got %v", err)
	}
}

func TestArithmeticKeepsExactness(t *testing.T) {
	a := MustNew("0.10", "USD")
	b := MustNew("0.20", "USD")
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := sum.Number(); got != "0.3" {
		t.Fatalf("0.10 + 0.20 = %s, want 0.3", got)
	}

	product, err := MustNew("9.99", "USD").Multiply("3")
	if err != nil {
		t.Fatalf("multiply: %v", err)
	}
	if got := product.Number(); got != "29.97" {
		t.Fatalf("9.99 * 3 = %s, want 29.97", got)
	}
}

func TestCurrencyMismatch(t *testing.T) {
	usd := MustNew("1.00", "USD")
	eur := MustNew("1.00", "EUR")
	if _, err := usd.Add(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
	if _, err := usd.Subtract(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
	if _, err := usd.Compare(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}
}

func TestRoundModes(t *testing.T) {
	cases := []struct {
		number   string
		currency string
		mode     RoundingMode
		want     string
	}{
		{"20.555", "USD", RoundHalfUp, "20.56"},
		{"20.555", "USD", RoundHalfDown, "20.55"},
		{"20.555", "USD", RoundHalfEven, "20.56"},
		{"20.565", "USD", RoundHalfEven, "20.56"},
		{"-20.555", "USD", RoundHalfUp, "-20.56"},
		{"-20.555", "USD", RoundHalfDown, "-20.55"},
		{"20.5551", "USD", RoundHalfDown, "20.56"},
		{"1.005", "JPY", RoundHalfUp, "1"},
		{"1.0004", "BHD", RoundHalfUp, "1"},
		{"1.0005", "BHD", RoundHalfUp, "1.001"},
	}
	for _, tc := range cases {
		got := MustNew(tc.number, tc.currency).Round(tc.mode)
		if got.Number() != tc.want {
			t.Fatalf("round(%s %s, mode %d) = %s, want %s", tc.number, tc.currency, tc.mode, got.Number(), tc.want)
		}
	}
}

func TestRoundIsIdempotent(t *testing.T) {
	p := MustNew("20.555", "USD").Round(RoundHalfUp)
	again := p.Round(RoundHalfUp)
	if !p.Equal(again) {
		t.Fatalf("rounding twice changed the value: %s vs %s", p, again)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	p := MustNew("12.34", "USD")
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"number":"12.34","currency_code":"USD"}`
	if string(data) != want {
		t.Fatalf("marshalled %s, want %s", data, want)
	}

	var back Price
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Equal(back) {
		t.Fatalf("round trip changed the price: %s vs %s", p, back)
	}
}

func TestUnmarshalRejectsUnknownCurrency(t *testing.T) {
	var p Price
	err := json.Unmarshal([]byte(`{"number":"1.00","currency_code":"ZZZ"}`), &p)
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestNegateAndSigns(t *testing.T) {
	p := MustNew("5.00", "USD")
	n := p.Negate()
	if !n.IsNegative() || n.Number() != "-5" {
		t.Fatalf("negate(5.00) = %s", n.Number())
	}
	if !p.IsPositive() || p.IsZero() {
		t.Fatalf("sign helpers wrong for %s", p)
	}
	zero, err := Zero("USD")
	if err != nil || !zero.IsZero() {
		t.Fatalf("Zero(USD) = %s, err %v", zero, err)
	}
}
