package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/backend-pricing/internal/money"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	DefaultCurrency string
	DefaultStore    string
	DefaultTaxZone  string
	RoundingMode    money.RoundingMode

	PriceCacheTTL    time.Duration
	RateLimitPerMin  int
	RateLimitEnabled bool

	RepriceQueue      string
	RepriceMaxRetry   int
	RepriceLockTTL    time.Duration
	WorkerConcurrency int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		DefaultCurrency: valueOrDefault(k.String("PRICING_DEFAULT_CURRENCY"), "USD"),
		DefaultStore:    valueOrDefault(k.String("PRICING_DEFAULT_STORE"), "default"),
		DefaultTaxZone:  valueOrDefault(k.String("PRICING_DEFAULT_TAX_ZONE"), "default"),
		RoundingMode:    parseRoundingMode(k.String("PRICING_ROUNDING_MODE")),

		PriceCacheTTL:    parseDuration(k.String("PRICE_CACHE_TTL"), "5m"),
		RateLimitPerMin:  parseInt(k.String("RATE_LIMIT_PER_MIN"), 120),
		RateLimitEnabled: parseBool(valueOrDefault(k.String("RATE_LIMIT_ENABLED"), "true")),

		RepriceQueue:      valueOrDefault(k.String("REPRICE_QUEUE"), "reprice"),
		RepriceMaxRetry:   parseInt(k.String("REPRICE_MAX_RETRY"), 5),
		RepriceLockTTL:    parseDuration(k.String("REPRICE_LOCK_TTL"), "30s"),
		WorkerConcurrency: parseInt(k.String("WORKER_CONCURRENCY"), 4),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if !money.KnownCurrency(cfg.DefaultCurrency) {
		return nil, fmt.Errorf("PRICING_DEFAULT_CURRENCY %q is not a known currency", cfg.DefaultCurrency)
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseRoundingMode(value string) money.RoundingMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "half-down":
		return money.RoundHalfDown
	case "half-even":
		return money.RoundHalfEven
	default:
		return money.RoundHalfUp
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
