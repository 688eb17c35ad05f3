package db

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var errUnreachable = errors.New("dial tcp: connection refused")

func TestConnectRetriesUntilReachable(t *testing.T) {
	calls := 0
	gdb, err := Connect(context.Background(), func() (*gorm.DB, error) {
		calls++
		if calls < 3 {
			return nil, errUnreachable
		}
		return gorm.Open(sqlite.Open("file:connect_retry?mode=memory&cache=shared"), GormConfig(false))
	}, RetryPolicy{MaxRetries: 5, Delay: time.Millisecond})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if gdb == nil {
		t.Fatalf("expected a handle")
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestConnectGivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	_, err := Connect(context.Background(), func() (*gorm.DB, error) {
		calls++
		return nil, errUnreachable
	}, RetryPolicy{MaxRetries: 4, Delay: 0})

	var cerr *ConnectionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
	if cerr.Attempts != 4 || calls != 4 {
		t.Fatalf("expected 4 attempts, got attempts=%d calls=%d", cerr.Attempts, calls)
	}
	if !errors.Is(err, errUnreachable) {
		t.Fatalf("expected last error to be wrapped, got %v", err)
	}
}

func TestConnectStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	start := time.Now()
	_, err := Connect(ctx, func() (*gorm.DB, error) {
		calls++
		return nil, errUnreachable
	}, RetryPolicy{MaxRetries: 12, Delay: time.Hour})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("cancelled connect should not sleep")
	}
}

func TestDSNStringFromParts(t *testing.T) {
	cfg := Config{
		Host:     "db.internal",
		Port:     6543,
		User:     "app",
		Password: "p@ss",
		Name:     "homehub",
		SSLCA:    "/etc/ssl/ca.pem",
	}
	u, err := url.Parse(cfg.DSNString())
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	if u.Host != "db.internal:6543" || u.Path != "/homehub" {
		t.Fatalf("unexpected host/path: %s %s", u.Host, u.Path)
	}
	if pw, _ := u.User.Password(); pw != "p@ss" {
		t.Fatalf("password not preserved: %q", pw)
	}
	q := u.Query()
	if q.Get("sslmode") != "verify-full" || q.Get("sslrootcert") != "/etc/ssl/ca.pem" {
		t.Fatalf("unexpected tls params: %v", q)
	}
}

func TestDSNStringOverride(t *testing.T) {
	cfg := Config{DSN: "postgres://x@y/z", Host: "ignored"}
	if got := cfg.DSNString(); got != "postgres://x@y/z" {
		t.Fatalf("expected override, got %q", got)
	}
	plain := Config{Host: "localhost", Name: "db"}
	u, _ := url.Parse(plain.DSNString())
	if u.Query().Get("sslmode") != "disable" || u.Port() != "5432" {
		t.Fatalf("unexpected defaults: %s", plain.DSNString())
	}
}

func TestGormLoggerWritesThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	GormConfig(true).Logger.Info(context.Background(), "pool ready %d", 3)

	out := buf.String()
	if !strings.Contains(out, `"level":"INFO"`) || !strings.Contains(out, "pool ready 3") {
		t.Fatalf("expected gorm log as slog JSON record, got %q", out)
	}
}
