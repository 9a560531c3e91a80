package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoflow/quote-go/internal/application/port"
	"github.com/sokoflow/quote-go/internal/domain/estimator"
	"github.com/sokoflow/quote-go/internal/domain/pricing"
	"github.com/sokoflow/quote-go/internal/domain/shipping"
	"github.com/sokoflow/quote-go/internal/interfaces/http/handler"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{}) {}
func (l nopLogger) With(...interface{}) port.Logger { return l }
func (l nopLogger) WithContext(context.Context) port.Logger { return l }

// downAI simulates an unreachable provider so batch requests exercise the
// rule-based path without wall-clock backoff.
type downAI struct{}

func (downAI) EstimateWeight(context.Context, string) (estimator.WeightEstimate, error) {
	return estimator.WeightEstimate{}, estimator.NewProviderError(0, errors.New("connection refused"))
}

func newRouter() http.Handler {
	estimates := estimator.NewFallback(downAI{}, estimator.NewRuleBased(), estimator.FallbackConfig{
		MaxAttempts: 1,
		BackoffBase: time.Millisecond,
		Concurrency: 2,
	}, nopLogger{}).WithSleep(func(context.Context, time.Duration) error { return nil })

	h := handler.New(
		estimates,
		pricing.NewEngine(pricing.DefaultRates()),
		shipping.NewCalculator(shipping.DefaultFlatPerKgProfile(), 130),
		nopLogger{},
		"test",
	)

	r := chi.NewRouter()
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)
	h.Routes(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEstimateBatchHappyPath(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodPost, "/api/v1/estimates/batch", map[string]any{
		"prompts": []any{"Sony PS5 console", 42, "macbook pro laptop"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items                 []json.RawMessage `json:"items"`
		TotalChargeableWeight float64           `json:"totalChargeableWeight"`
		Source                string            `json:"source"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Items, 3)
	assert.Equal(t, "batch", resp.Source)
	assert.Greater(t, resp.TotalChargeableWeight, 0.0)

	// Item order mirrors prompt order: the invalid middle entry renders as
	// a per-item error without failing the batch.
	var first struct {
		Source   string `json:"source"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal(resp.Items[0], &first))
	assert.Equal(t, "rule-based", first.Source)
	assert.Equal(t, "console", first.Category)

	var second struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Items[1], &second))
	assert.NotEmpty(t, second.Error)
}

func TestEstimateBatchRejectsMissingPrompts(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"empty object", map[string]any{}},
		{"empty array", map[string]any{"prompts": []any{}}},
		{"wrong type", map[string]any{"prompts": "not an array"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, newRouter(), http.MethodPost, "/api/v1/estimates/batch", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "Product descriptions are required as an array", resp.Error)
		})
	}
}

func TestShippingQuoteEndpoint(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodPost, "/api/v1/quotes/shipping", map[string]any{
		"chargeableWeightKg": 4.5,
		"isInsured":          true,
		"cartTotalUSD":       1000,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp shipping.ShippingQuote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.InDelta(t, 72.0, resp.ShippingCostUSD, 1e-9)
	assert.InDelta(t, 30.0, resp.InsuranceCostUSD, 1e-9)
	assert.InDelta(t, 107.0, resp.TotalUSD, 1e-9)
}

func TestShippingQuoteValidation(t *testing.T) {
	router := newRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/quotes/shipping", map[string]any{
		"isInsured": true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/quotes/shipping", map[string]any{
		"chargeableWeightKg": -2,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, shipping.ErrInvalidWeight.Error(), resp.Error)
}

func TestPriceQuoteEndpoint(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodPost, "/api/v1/quotes/price", map[string]any{
		"sourcePriceUSD": 1000,
		"condition":      "new",
		"title":          "Generic Widget",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		FinalPriceLocal float64 `json:"finalPriceLocal"`
		Display         string  `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 148936.0, resp.FinalPriceLocal)
	assert.Equal(t, "Ksh 148,936", resp.Display)
}

func TestPriceQuoteNeverFails(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodPost, "/api/v1/quotes/price", map[string]any{
		"sourcePriceUSD": 0,
		"condition":      "new",
		"title":          "Generic Widget",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Unavailable bool   `json:"unavailable"`
		Display     string `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Unavailable)
	assert.Equal(t, "Price unavailable", resp.Display)
}

func TestHealthEndpoint(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestNotFound(t *testing.T) {
	rec := doJSON(t, newRouter(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
