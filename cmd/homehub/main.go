package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homehub/internal/config"
	"homehub/internal/observability/logging"
	"homehub/internal/observability/metrics"
	"homehub/internal/proxy"
	"homehub/internal/service/impl"
	"homehub/internal/store"
	transport "homehub/internal/transport/http"
	"homehub/pkg/db"
)

const serviceName = "homehub"

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)
	metrics.MustRegister(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting service", "addr", cfg.Addr, "schema_mode", cfg.SchemaMode)

	gdb, err := db.Open(ctx, cfg.DB)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)
	switch cfg.SchemaMode {
	case config.SchemaMigrate:
		err = st.Migrate(ctx)
	default:
		err = st.Setup(ctx)
	}
	if err != nil {
		logger.Error("schema setup failed", "error", err)
		os.Exit(1)
	}

	passwords := impl.NewPasswordServiceArgon2id()
	router := transport.NewRouter(transport.Services{
		Auth:     impl.NewAuthServiceImpl(st, passwords, cfg.SessionTTL),
		Devices:  impl.NewDeviceServiceImpl(st),
		Sensors:  impl.NewSensorServiceImpl(st, cfg.SensorDefaultWindow),
		Wardrobe: impl.NewWardrobeServiceImpl(st),
		Profile:  impl.NewProfileServiceImpl(st),
	}, transport.Options{
		TemplatesDir:    cfg.TemplatesDir,
		StaticDir:       cfg.StaticDir,
		CORSOrigins:     cfg.CORSOrigins,
		IngestRateLimit: cfg.IngestRateLimit,
		AI: proxy.New(cfg.AIBaseURL, cfg.AITimeout, map[string]string{
			"email": cfg.AIEmail,
			"pid":   cfg.AIPID,
		}).ForwardJSON(transport.AICompletePath),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("homehub listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("shutdown completed")
}
