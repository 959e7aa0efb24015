package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"bookcatalog-core/internal/infrastructure/database"
)

// Config is the full application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Jobs     JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig carries the domain tunables so services stay pure
// functions of their injected config.
type CatalogConfig struct {
	RoyaltyBaseRate        decimal.Decimal
	RoyaltyBestsellerBonus decimal.Decimal
	BestsellerThreshold    int
	RoyaltyMaxRate         decimal.Decimal
	DefaultCurrency        string
	BaseBookPrice          decimal.Decimal
	PublishMaxPerYear      int
	PublishCooldownDays    int
	PublishMaxUnpublished  int
	ReorderLeadTimeDays    int
}

type JobConfig struct {
	ReorderScanLimit int
}

// Load reads configuration from the environment. A local .env file is
// applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "bookcatalog"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			RoyaltyBaseRate:        getEnvDecimal("ROYALTY_BASE_RATE", "0.10"),
			RoyaltyBestsellerBonus: getEnvDecimal("ROYALTY_BESTSELLER_BONUS", "0.05"),
			BestsellerThreshold:    getEnvInt("BESTSELLER_THRESHOLD", 1000),
			RoyaltyMaxRate:         getEnvDecimal("ROYALTY_MAX_RATE", "0.20"),
			DefaultCurrency:        getEnv("DEFAULT_CURRENCY", "USD"),
			BaseBookPrice:          getEnvDecimal("BASE_BOOK_PRICE", "14.99"),
			PublishMaxPerYear:      getEnvInt("PUBLISH_MAX_PER_YEAR", 2),
			PublishCooldownDays:    getEnvInt("PUBLISH_COOLDOWN_DAYS", 180),
			PublishMaxUnpublished:  getEnvInt("PUBLISH_MAX_UNPUBLISHED", 5),
			ReorderLeadTimeDays:    getEnvInt("REORDER_LEAD_TIME_DAYS", 14),
		},
		Jobs: JobConfig{
			ReorderScanLimit: getEnvInt("REORDER_SCAN_LIMIT", 200),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD must be set in production")
	}
	if len(c.Catalog.DefaultCurrency) != 3 {
		return fmt.Errorf("DEFAULT_CURRENCY must be a 3-letter code")
	}
	if c.Catalog.RoyaltyMaxRate.LessThan(c.Catalog.RoyaltyBaseRate) {
		return fmt.Errorf("ROYALTY_MAX_RATE cannot be below ROYALTY_BASE_RATE")
	}
	return nil
}

// DatabasePoolConfig maps the env-level database settings onto the
// pool bootstrap config.
func (c *Config) DatabasePoolConfig() database.Config {
	return database.Config{
		Host:              c.Database.Host,
		Port:              c.Database.Port,
		Username:          c.Database.User,
		Password:          c.Database.Password,
		DBName:            c.Database.Database,
		MaxConns:          int32(c.Database.MaxConns),
		MinConns:          int32(c.Database.MinConns),
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   30 * time.Minute,
		HealthCheckPeriod: time.Minute,
		MaxRetries:        5,
		RetryDelay:        time.Second,
		ConnectTimeout:    10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		value, _ = decimal.NewFromString(defaultValue)
	}
	return value
}
