// Package port contains the port interfaces (driven ports) for the application layer.
// Ports define the interfaces that the application layer requires from external
// services like logging and provider authentication.
//
// In Hexagonal Architecture (ports & adapters):
//   - Ports are interfaces that define what the application needs.
//   - Adapters are implementations of these interfaces.
//   - This enables loose coupling and easy testing/swapping of implementations.
//
// SOLID Principles applied:
//   - Interface Segregation: small, focused interfaces
//   - Dependency Inversion: Application depends on abstractions
package port

import (
	"context"
)

// Logger defines the interface for structured logging.
// Implementation may use zap, logrus, or the standard library.
//
// Example usage:
//
//	log.Info("batch estimated", "items", n, "total_kg", total)
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})

	// With returns a logger with additional context fields.
	With(keysAndValues ...interface{}) Logger

	// WithContext returns a logger with context information (e.g., request ID).
	WithContext(ctx context.Context) Logger
}

// TokenProvider supplies bearer tokens for outbound provider calls. It owns
// its own state (cached token, TTL refresh) behind internal synchronization
// so it is safe under concurrent request handling; callers never see or
// share mutable token state.
type TokenProvider interface {
	// Token returns a currently valid bearer token, refreshing it first
	// if the cached one has expired.
	Token(ctx context.Context) (string, error)

	// Invalidate discards the cached token so the next Token call
	// refreshes. Used after an upstream 401.
	Invalidate()
}
