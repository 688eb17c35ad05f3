package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	DSN      string // full URL; when set, the discrete fields below are ignored
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string // disable, require, verify-ca, verify-full
	SSLCA    string // path to CA certificate (sslrootcert)

	MaxRetries      int
	RetryDelay      time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogSQL          bool
}

// ConnectionError is returned when the store is still unreachable after every
// retry attempt.
type ConnectionError struct {
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to database after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// RetryPolicy bounds connection acquisition.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// ConnectFunc opens one handle. It is called once per attempt.
type ConnectFunc func() (*gorm.DB, error)

// DSNString renders the postgres connection URL for cfg.
func (cfg Config) DSNString() string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	q := url.Values{}
	mode := cfg.SSLMode
	if mode == "" {
		mode = "disable"
		if cfg.SSLCA != "" {
			mode = "verify-full"
		}
	}
	q.Set("sslmode", mode)
	if cfg.SSLCA != "" {
		q.Set("sslrootcert", cfg.SSLCA)
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, port),
		Path:     "/" + cfg.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// GormConfig is shared by the postgres pool and the sqlite test stores so that
// constraint violations surface as gorm.ErrDuplicatedKey on both.
func GormConfig(logSQL bool) *gorm.Config {
	lvl := logger.Silent
	if logSQL {
		lvl = logger.Info
	}
	return &gorm.Config{
		Logger: logger.New(slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
		TranslateError: true,
	}
}

// Open builds the process-wide connection pool. It is called once at startup.
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	dsn := cfg.DSNString()
	gdb, err := Connect(ctx, func() (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), GormConfig(cfg.LogSQL))
	}, RetryPolicy{MaxRetries: cfg.MaxRetries, Delay: cfg.RetryDelay})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return gdb, nil
}

// Connect runs connect until a handle answers a ping, sleeping p.Delay between
// attempts, for at most p.MaxRetries attempts.
func Connect(ctx context.Context, connect ConnectFunc, p RetryPolicy) (*gorm.DB, error) {
	if p.MaxRetries <= 0 {
		p.MaxRetries = 12
	}
	if p.Delay < 0 {
		p.Delay = 0
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxRetries; attempt++ {
		gdb, err := connect()
		if err == nil {
			err = ping(ctx, gdb)
		}
		if err == nil {
			slog.Info("database connection established", "attempt", attempt)
			return gdb, nil
		}
		// gorm.Open hands back a half-initialised handle when its own ping fails.
		closeQuietly(gdb)
		lastErr = err

		slog.Warn("database connection attempt failed",
			"attempt", attempt,
			"max_retries", p.MaxRetries,
			"retry_in", p.Delay.String(),
			"error", err,
		)
		if attempt == p.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return nil, &ConnectionError{Attempts: attempt, Err: errors.Join(lastErr, ctx.Err())}
		case <-time.After(p.Delay):
		}
	}
	return nil, &ConnectionError{Attempts: p.MaxRetries, Err: lastErr}
}

func ping(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func closeQuietly(gdb *gorm.DB) {
	if gdb == nil {
		return
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
