package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mmynk/cashcrush/internal/auth"
	"github.com/mmynk/cashcrush/internal/cache"
	"github.com/mmynk/cashcrush/internal/config"
	"github.com/mmynk/cashcrush/internal/email"
	"github.com/mmynk/cashcrush/internal/insights"
	"github.com/mmynk/cashcrush/internal/server"
	"github.com/mmynk/cashcrush/internal/storage/sqlstore"
	"github.com/mmynk/cashcrush/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.Open(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DB.Driver)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := server.Options{
		Store:            store,
		Authenticator:    auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		Registry:         registry,
		Logger:           logger,
		InsightTTL:       cfg.Insights.CacheTTL,
		ReminderCooldown: cfg.Email.Cooldown,
		CORSOrigins:      cfg.App.CORSOrigins,
		StaticPath:       cfg.App.StaticPath,
	}

	if cfg.Redis.Addr != "" {
		client, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		opts.Cache = cache.NewRedis(client, "cashcrush:")
		slog.Info("Cache connected", "addr", cfg.Redis.Addr)
	} else {
		slog.Warn("REDIS_ADDR not set; insight caching and reminder cooldowns are disabled")
	}

	if cfg.Email.ResendAPIKey != "" {
		opts.Sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From, registry)
	} else {
		slog.Warn("RESEND_API_KEY not set; payment reminders are disabled")
	}

	if cfg.Insights.GeminiAPIKey != "" {
		gen, err := insights.NewGemini(ctx, cfg.Insights.GeminiAPIKey, cfg.Insights.Model)
		if err != nil {
			return err
		}
		opts.Generator = gen
	} else {
		slog.Warn("GEMINI_API_KEY not set; spending insights are disabled")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           server.New(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
