// Package main is the entry point for the quoting API: weight estimation
// and profit-margin pricing for cross-border e-commerce.
//
// 12-Factor App compliance:
//   - I. Codebase: Single codebase tracked in version control
//   - II. Dependencies: Managed via go.mod
//   - III. Config: Configuration via environment variables
//   - VI. Processes: Stateless processes
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	go run cmd/quote-api/main.go
//
// Environment Variables:
//
//	QGO_ENVIRONMENT      - Deployment environment (development, staging, production)
//	QGO_SERVER_PORT      - HTTP server port (default: 8080)
//	QGO_PROVIDER_API_KEY - AI estimation provider API key
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sokoflow/quote-go/internal/application/port"
	"github.com/sokoflow/quote-go/internal/domain/estimator"
	"github.com/sokoflow/quote-go/internal/domain/pricing"
	"github.com/sokoflow/quote-go/internal/domain/shipping"
	"github.com/sokoflow/quote-go/internal/infrastructure/aiprovider"
	"github.com/sokoflow/quote-go/internal/infrastructure/config"
	"github.com/sokoflow/quote-go/internal/interfaces/http/handler"
	"github.com/sokoflow/quote-go/internal/interfaces/http/middleware"
	"github.com/sokoflow/quote-go/pkg/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cfg := config.MustLoad()

	log := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
	})
	defer log.Sync()

	log.Info("starting quoting API",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Context that listens for shutdown signals.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logAdapter := &loggerAdapter{log}

	// ============================================================================
	// Domain wiring
	// ============================================================================

	tokens := aiprovider.NewStaticTokenSource(cfg.Provider.APIKey)

	aiClient := aiprovider.NewClient(aiprovider.Config{
		BaseURL:        cfg.Provider.BaseURL,
		Model:          cfg.Provider.Model,
		RequestTimeout: cfg.Provider.RequestTimeout,
	}, tokens, logAdapter)

	estimates := estimator.NewFallback(
		aiClient,
		estimator.NewRuleBased(),
		estimator.FallbackConfig{
			MaxAttempts: cfg.Provider.MaxAttempts,
			BackoffBase: cfg.Provider.BackoffBase,
			Concurrency: cfg.Provider.Concurrency,
		},
		logAdapter,
	)

	pricingEngine := pricing.NewEngine(pricing.Rates{
		ExchangeRate:  cfg.Pricing.ExchangeRate,
		BankMarkupPct: cfg.Pricing.BankMarkupPct,
		CardFeePct:    cfg.Pricing.CardFeePct,
	})

	shippingCalc := shipping.NewCalculator(shippingProfile(cfg), cfg.Pricing.ExchangeRate)

	api := handler.New(estimates, pricingEngine, shippingCalc, logAdapter, version)

	// ============================================================================
	// Middleware stack
	// ============================================================================
	// Order matters: middleware executes in the order added.

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logAdapter))
	r.Use(middleware.Recoverer(logAdapter))
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "X-API-Version"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimiter(middleware.DefaultRateLimiterConfig()))
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.APIVersion(version))
	r.Use(middleware.ContentTypeJSON)

	// ============================================================================
	// Routes
	// ============================================================================

	api.Routes(r)
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// ============================================================================
	// HTTP server
	// ============================================================================

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "address", addr, "shipping_profile", shippingCalc.ProfileName())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	<-ctx.Done()

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("server shutdown complete")
}

// shippingProfile builds the configured rate profile. Two models coexist
// pending product clarification on which is authoritative.
func shippingProfile(cfg *config.Config) shipping.RateProfile {
	if cfg.Shipping.Profile == "graduated-usd" {
		return shipping.DefaultGraduatedUSDProfile()
	}
	return shipping.FlatPerKgProfile{
		BaseRateKES:    cfg.Shipping.BaseRateKES,
		PerKgRateKES:   cfg.Shipping.PerKgRateKES,
		LastMileFeeKES: cfg.Shipping.LastMileFeeKES,
		ExchangeRate:   cfg.Pricing.ExchangeRate,
	}
}

// ============================================================================
// Adapters to implement port interfaces
// ============================================================================

// loggerAdapter adapts logger.Logger to the port.Logger interface.
type loggerAdapter struct {
	*logger.Logger
}

// Debug implements port.Logger.
func (l *loggerAdapter) Debug(msg string, keysAndValues ...any) {
	l.Logger.Debug(msg, keysAndValues...)
}

// Info implements port.Logger.
func (l *loggerAdapter) Info(msg string, keysAndValues ...any) {
	l.Logger.Info(msg, keysAndValues...)
}

// Warn implements port.Logger.
func (l *loggerAdapter) Warn(msg string, keysAndValues ...any) {
	l.Logger.Warn(msg, keysAndValues...)
}

// Error implements port.Logger.
func (l *loggerAdapter) Error(msg string, keysAndValues ...any) {
	l.Logger.Error(msg, keysAndValues...)
}

// With implements port.Logger.
func (l *loggerAdapter) With(keysAndValues ...any) port.Logger {
	return &loggerAdapter{l.Logger.With(keysAndValues...)}
}

// WithContext implements port.Logger.
func (l *loggerAdapter) WithContext(ctx context.Context) port.Logger {
	return &loggerAdapter{l.Logger.WithContext(ctx)}
}
