// Package httpx provides http.RoundTripper decorators for outbound calls:
// structured call logging and bearer-token authentication.
package httpx

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger is the minimal structured logging contract httpx needs. The
// application's zap-backed logger satisfies it.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// LoggingRoundTripper logs every outbound request with a generated call ID,
// the response status, and the call duration.
type LoggingRoundTripper struct {
	next http.RoundTripper
	log  Logger
}

// NewLoggingRoundTripper decorates next with call logging. A nil next uses
// http.DefaultTransport.
func NewLoggingRoundTripper(next http.RoundTripper, log Logger) LoggingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return LoggingRoundTripper{next: next, log: log}
}

// RoundTrip implements http.RoundTripper.
func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	callID := uuid.New().String()

	rt.log.Debug("outbound request",
		"call_id", callID,
		"method", req.Method,
		"url", req.URL.Redacted(),
	)

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		rt.log.Error("outbound request failed",
			"call_id", callID,
			"url", req.URL.Redacted(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, fmt.Errorf("round trip: %w", err)
	}

	rt.log.Info("outbound response",
		"call_id", callID,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp, nil
}
