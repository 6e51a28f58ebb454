// Package server assembles the HTTP surface: Connect services, health,
// metrics and the optional static frontend.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/cashcrush/internal/auth"
	"github.com/mmynk/cashcrush/internal/cache"
	"github.com/mmynk/cashcrush/internal/email"
	"github.com/mmynk/cashcrush/internal/insights"
	"github.com/mmynk/cashcrush/internal/middleware"
	"github.com/mmynk/cashcrush/internal/service"
	"github.com/mmynk/cashcrush/internal/storage"
	"github.com/mmynk/cashcrush/pkg/api/apiconnect"
)

// rpcPrefix is the path prefix shared by every Connect procedure.
const rpcPrefix = "/cashcrush.v1."

const healthTimeout = 2 * time.Second

// Options configures New. Store, Authenticator and Registry are required.
type Options struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	Registry      *prometheus.Registry
	Logger        *slog.Logger

	// Cache backs insight caching and reminder cooldowns. Nil disables both.
	Cache cache.Cache
	// Generator and Sender are nil when the features are not configured.
	Generator insights.Generator
	Sender    email.Sender

	InsightTTL       time.Duration
	ReminderCooldown time.Duration

	CORSOrigins []string
	// StaticPath, when set, is served for every non-RPC path.
	StaticPath string
}

// New builds the root handler. It accepts HTTP/2 without TLS.
func New(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := opts.Cache
	if c == nil {
		c = cache.Noop{}
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Authorization",
			"Content-Type",
			"Connect-Protocol-Version",
			"Connect-Timeout-Ms",
		},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	metrics := middleware.NewMetrics(opts.Registry)
	handlerOpts := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(opts.Authenticator, opts.Store),
		middleware.LoggingInterceptor(logger),
	)

	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(apiconnect.NewUserServiceHandler(service.NewUserService(opts.Store), handlerOpts))
	mount(apiconnect.NewGroupServiceHandler(service.NewGroupService(opts.Store), handlerOpts))
	mount(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(opts.Store), handlerOpts))
	mount(apiconnect.NewSettlementServiceHandler(service.NewSettlementService(opts.Store), handlerOpts))
	mount(apiconnect.NewDashboardServiceHandler(service.NewDashboardService(opts.Store), handlerOpts))
	mount(apiconnect.NewInsightServiceHandler(
		service.NewInsightService(opts.Store, opts.Generator, c, opts.InsightTTL), handlerOpts))
	mount(apiconnect.NewReminderServiceHandler(
		service.NewReminderService(opts.Store, opts.Sender, c, opts.ReminderCooldown), handlerOpts))

	r.Get("/healthz", healthHandler(opts.Store, c))
	r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{Registry: opts.Registry}))

	if opts.StaticPath != "" {
		r.NotFound(staticHandler(opts.StaticPath))
	}

	return h2c.NewHandler(r, &http2.Server{})
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler reports 200 when the store and the cache answer a ping.
func healthHandler(store, c pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			slog.Error("Health check failed", "component", "store", "error", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		if err := c.Ping(ctx); err != nil {
			slog.Error("Health check failed", "component", "cache", "error", err)
			http.Error(w, "cache unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// staticHandler serves files under dir. Unknown paths fall back to
// index.html so client-side routes resolve.
func staticHandler(dir string) http.HandlerFunc {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}
	slog.Info("Serving static files", "path", root)

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, rpcPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(root, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(root, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}
}
