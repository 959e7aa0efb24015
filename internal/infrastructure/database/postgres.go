package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bookcatalog-core/pkg/logger"
)

// Config holds everything needed to connect a PostgreSQL pool.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	DBName   string

	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration

	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

// PostgresDB wraps the pgx pool and its lifecycle.
type PostgresDB struct {
	Pool   *pgxpool.Pool
	config Config
	log    logger.Logger
}

func NewPostgresDB(config Config, log logger.Logger) *PostgresDB {
	return &PostgresDB{config: config, log: log}
}

func (db *PostgresDB) dsn() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		db.config.Username, db.config.Password, db.config.Host, db.config.Port, db.config.DBName)
}

func (db *PostgresDB) poolConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(db.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	cfg.MaxConns = db.config.MaxConns
	cfg.MinConns = db.config.MinConns
	cfg.MaxConnLifetime = db.config.MaxConnLifetime
	cfg.MaxConnIdleTime = db.config.MaxConnIdleTime
	cfg.HealthCheckPeriod = db.config.HealthCheckPeriod
	cfg.ConnConfig.ConnectTimeout = db.config.ConnectTimeout
	return cfg, nil
}

// Connect establishes the pool, retrying with exponential backoff.
func (db *PostgresDB) Connect(ctx context.Context) error {
	cfg, err := db.poolConfig()
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= db.config.MaxRetries; attempt++ {
		connectCtx, cancel := context.WithTimeout(ctx, db.config.ConnectTimeout)
		pool, err := pgxpool.NewWithConfig(connectCtx, cfg)
		cancel()

		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr != nil {
				pool.Close()
				err = pingErr
			} else {
				db.Pool = pool
				db.log.Info("database connected", map[string]interface{}{"attempt": attempt})
				return nil
			}
		}
		lastErr = err
		db.log.Error(fmt.Sprintf("database connection attempt %d/%d failed", attempt, db.config.MaxRetries), err)

		if attempt < db.config.MaxRetries {
			delay := db.config.RetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}
	return fmt.Errorf("failed to connect after %d attempts: %w", db.config.MaxRetries, lastErr)
}

// HealthCheck pings the pool with a bounded timeout.
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if db.Pool.Stat().TotalConns() == 0 {
		return fmt.Errorf("no active database connections")
	}
	return nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
