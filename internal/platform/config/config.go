package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	LogLevel       string
	MigrationsPath string

	// Pricing
	LocalCurrency       string
	DefaultExchangeRate decimal.Decimal
	RateCacheTTL        time.Duration
	RecalcWorkers       int
	RecalcTimeout       time.Duration

	// Rate feed
	RateFeedEnabled         bool
	RateFeedURL             string
	RateFeedCron            string
	RateFeedCurrencies      []string
	RateFeedApplyToProducts bool

	// HTTP surface
	CORSAllowedOrigins []string
	RateLimit          string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("LOCAL_CURRENCY", "PYG")
	v.SetDefault("DEFAULT_EXCHANGE_RATE", "7300")
	v.SetDefault("RATE_CACHE_TTL", "5m")
	v.SetDefault("RECALC_WORKERS", 1)
	v.SetDefault("RECALC_TIMEOUT", "2m")
	v.SetDefault("RATE_FEED_ENABLED", false)
	v.SetDefault("RATE_FEED_URL", "https://open.er-api.com/v6/latest")
	v.SetDefault("RATE_FEED_CRON", "0 9 * * 1-5")
	v.SetDefault("RATE_FEED_CURRENCIES", "USD")
	v.SetDefault("RATE_FEED_APPLY_TO_PRODUCTS", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("RATE_LIMIT", "30-M")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:             v.GetString("PGSQL_URL"),
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:           v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:           strings.ToLower(v.GetString("STORAGE_DRIVER")),
		LogLevel:                v.GetString("LOG_LEVEL"),
		MigrationsPath:          v.GetString("MIGRATIONS_PATH"),
		LocalCurrency:           strings.ToUpper(v.GetString("LOCAL_CURRENCY")),
		RecalcWorkers:           v.GetInt("RECALC_WORKERS"),
		RateFeedEnabled:         v.GetBool("RATE_FEED_ENABLED"),
		RateFeedURL:             v.GetString("RATE_FEED_URL"),
		RateFeedCron:            v.GetString("RATE_FEED_CRON"),
		RateFeedCurrencies:      splitList(v.GetString("RATE_FEED_CURRENCIES"), true),
		RateFeedApplyToProducts: v.GetBool("RATE_FEED_APPLY_TO_PRODUCTS"),
		CORSAllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS"), false),
		RateLimit:               v.GetString("RATE_LIMIT"),
	}

	if cfg.StorageDriver != StorageMemory && cfg.StorageDriver != StoragePostgres {
		log.Printf("Warning: unknown STORAGE_DRIVER '%s'. Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	rate, err := decimal.NewFromString(v.GetString("DEFAULT_EXCHANGE_RATE"))
	if err != nil || !rate.IsPositive() {
		rate = decimal.NewFromInt(7300)
		log.Printf("Warning: invalid DEFAULT_EXCHANGE_RATE. Defaulting to %s.\n", rate.String())
	}
	cfg.DefaultExchangeRate = rate

	cfg.RateCacheTTL = parseDuration(v, "RATE_CACHE_TTL", 5*time.Minute)
	cfg.RecalcTimeout = parseDuration(v, "RECALC_TIMEOUT", 2*time.Minute)

	if cfg.RecalcWorkers < 1 {
		cfg.RecalcWorkers = 1
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string, upper bool) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if upper {
			part = strings.ToUpper(part)
		}
		out = append(out, part)
	}
	return out
}
