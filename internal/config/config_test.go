package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pricing/internal/money"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL": "postgres://localhost:5432/pricing",
		"REDIS_URL":    "redis://localhost:6379/0",
	})
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "USD", cfg.DefaultCurrency)
	require.Equal(t, "default", cfg.DefaultStore)
	require.Equal(t, "default", cfg.DefaultTaxZone)
	require.Equal(t, money.RoundHalfUp, cfg.RoundingMode)
	require.Equal(t, 5*time.Minute, cfg.PriceCacheTTL)
	require.Equal(t, 120, cfg.RateLimitPerMin)
	require.True(t, cfg.RateLimitEnabled)
	require.Equal(t, "reprice", cfg.RepriceQueue)
	require.Equal(t, 4, cfg.WorkerConcurrency)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":             "postgres://localhost:5432/pricing",
		"REDIS_URL":                "redis://localhost:6379/0",
		"PORT":                     "9090",
		"PRICING_DEFAULT_CURRENCY": "EUR",
		"PRICING_ROUNDING_MODE":    "half-even",
		"PRICE_CACHE_TTL":          "90s",
		"RATE_LIMIT_ENABLED":       "false",
		"REPRICE_LOCK_TTL":         "45s",
	})
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, "EUR", cfg.DefaultCurrency)
	require.Equal(t, money.RoundHalfEven, cfg.RoundingMode)
	require.Equal(t, 90*time.Second, cfg.PriceCacheTTL)
	require.False(t, cfg.RateLimitEnabled)
	require.Equal(t, 45*time.Second, cfg.RepriceLockTTL)
}

func TestLoadRequiresURLs(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL": "",
		"REDIS_URL":    "redis://localhost:6379/0",
	})
	require.Error(t, err)

	_, err = LoadForTests(map[string]string{
		"DATABASE_URL": "postgres://localhost:5432/pricing",
		"REDIS_URL":    "",
	})
	require.Error(t, err)
}

func TestLoadRejectsUnknownCurrency(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL":             "postgres://localhost:5432/pricing",
		"REDIS_URL":                "redis://localhost:6379/0",
		"PRICING_DEFAULT_CURRENCY": "ZZZ",
	})
	require.Error(t, err)
}
