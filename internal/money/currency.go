package money

import "fmt"

// Currency describes an ISO 4217 currency known to the pricing engine.
type Currency struct {
	Code           string
	Symbol         string
	Name           string
	FractionDigits int32
}

// Rounding and display both depend on the minor-unit precision, so every
// currency handled by the service must be listed here.
var currencies = map[string]Currency{
	"AUD": {Code: "AUD", Symbol: "A$", Name: "Australian Dollar", FractionDigits: 2},
	"BHD": {Code: "BHD", Symbol: "BD", Name: "Bahraini Dinar", FractionDigits: 3},
	"CAD": {Code: "CAD", Symbol: "CA$", Name: "Canadian Dollar", FractionDigits: 2},
	"CHF": {Code: "CHF", Symbol: "CHF", Name: "Swiss Franc", FractionDigits: 2},
	"CNY": {Code: "CNY", Symbol: "CN¥", Name: "Chinese Yuan", FractionDigits: 2},
	"EUR": {Code: "EUR", Symbol: "€", Name: "Euro", FractionDigits: 2},
	"GBP": {Code: "GBP", Symbol: "£", Name: "British Pound", FractionDigits: 2},
	"IDR": {Code: "IDR", Symbol: "Rp", Name: "Indonesian Rupiah", FractionDigits: 0},
	"INR": {Code: "INR", Symbol: "₹", Name: "Indian Rupee", FractionDigits: 2},
	"JPY": {Code: "JPY", Symbol: "¥", Name: "Japanese Yen", FractionDigits: 0},
	"KRW": {Code: "KRW", Symbol: "₩", Name: "South Korean Won", FractionDigits: 0},
	"KWD": {Code: "KWD", Symbol: "KD", Name: "Kuwaiti Dinar", FractionDigits: 3},
	"MYR": {Code: "MYR", Symbol: "RM", Name: "Malaysian Ringgit", FractionDigits: 2},
	"SGD": {Code: "SGD", Symbol: "S$", Name: "Singapore Dollar", FractionDigits: 2},
	"THB": {Code: "THB", Symbol: "฿", Name: "Thai Baht", FractionDigits: 2},
	"USD": {Code: "USD", Symbol: "$", Name: "US Dollar", FractionDigits: 2},
	"VND": {Code: "VND", Symbol: "₫", Name: "Vietnamese Dong", FractionDigits: 0},
}

// CurrencyFor returns the currency definition for the given code.
func CurrencyFor(code string) (Currency, error) {
	c, ok := currencies[code]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// KnownCurrency reports whether the code is registered.
func KnownCurrency(code string) bool {
	_, ok := currencies[code]
	return ok
}
