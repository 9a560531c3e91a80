// Package dto contains the data transfer objects of the HTTP surface.
package dto

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sokoflow/quote-go/internal/domain/estimator"
	"github.com/sokoflow/quote-go/internal/domain/pricing"
	"github.com/sokoflow/quote-go/internal/domain/shipping"
)

// ErrorResponse is the error payload shape shared by all endpoints.
type ErrorResponse struct {
	// Error is a human-readable error message.
	Error string `json:"error"`
}

// BatchEstimateRequest is the body of POST /api/v1/estimates/batch.
// Prompts is deliberately untyped: a malformed entry must produce a
// per-item error, not reject the whole batch.
type BatchEstimateRequest struct {
	Prompts []any `json:"prompts"`
}

// ErrPromptsRequired rejects a missing or empty prompts array.
var ErrPromptsRequired = errors.New("Product descriptions are required as an array")

// Bind implements render.Binder.
func (b *BatchEstimateRequest) Bind(*http.Request) error {
	if len(b.Prompts) == 0 {
		return ErrPromptsRequired
	}
	return nil
}

// BatchItem renders as either a weight estimate or a per-item error object.
type BatchItem struct {
	Estimate *estimator.WeightEstimate
	Err      error
}

// MarshalJSON implements json.Marshaler: valid items serialize as the
// estimate itself, invalid items as {"error": "..."}.
func (it BatchItem) MarshalJSON() ([]byte, error) {
	if it.Err != nil {
		return json.Marshal(ErrorResponse{Error: it.Err.Error()})
	}
	return json.Marshal(it.Estimate)
}

// BatchEstimateResponse is the aggregated batch result.
type BatchEstimateResponse struct {
	Items                 []BatchItem `json:"items"`
	TotalRealWeight       float64     `json:"totalRealWeight"`
	TotalVolumetricWeight float64     `json:"totalVolumetricWeight"`
	TotalChargeableWeight float64     `json:"totalChargeableWeight"`
	Source                string      `json:"source"`
}

// NewBatchEstimateResponse converts a domain batch result to its wire form.
func NewBatchEstimateResponse(result estimator.BatchResult) BatchEstimateResponse {
	items := make([]BatchItem, len(result.Items))
	for i, item := range result.Items {
		items[i] = BatchItem{Estimate: item.Estimate, Err: item.Err}
	}
	return BatchEstimateResponse{
		Items:                 items,
		TotalRealWeight:       result.TotalRealWeightKg,
		TotalVolumetricWeight: result.TotalVolumetricWeightKg,
		TotalChargeableWeight: result.TotalChargeableWeightKg,
		Source:                "batch",
	}
}

// ShippingQuoteRequest is the body of POST /api/v1/quotes/shipping.
// The weight is a pointer so a missing field is distinguishable from zero;
// both are validation errors.
type ShippingQuoteRequest struct {
	ChargeableWeightKg *float64 `json:"chargeableWeightKg"`
	IsInsured          bool     `json:"isInsured"`
	CartTotalUSD       float64  `json:"cartTotalUSD"`
}

// ErrWeightRequired rejects a missing chargeable weight.
var ErrWeightRequired = errors.New("chargeable weight is required")

// Bind implements render.Binder.
func (b *ShippingQuoteRequest) Bind(*http.Request) error {
	if b.ChargeableWeightKg == nil {
		return ErrWeightRequired
	}
	return nil
}

// ShippingQuoteResponse wraps the domain quote for the wire.
type ShippingQuoteResponse struct {
	shipping.ShippingQuote
}

// PriceQuoteRequest is the body of POST /api/v1/quotes/price.
type PriceQuoteRequest struct {
	SourcePriceUSD  float64 `json:"sourcePriceUSD"`
	Condition       string  `json:"condition"`
	Title           string  `json:"title"`
	StorageCapacity string  `json:"storageCapacity,omitempty"`
}

// Bind implements render.Binder. Pricing never rejects input: unusable
// prices yield the sentinel quote.
func (b *PriceQuoteRequest) Bind(*http.Request) error {
	return nil
}

// PriceQuoteResponse carries the breakdown plus the display string the
// checkout UI renders directly.
type PriceQuoteResponse struct {
	pricing.PriceQuote
	Display string `json:"display"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
