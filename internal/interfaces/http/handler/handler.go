// Package handler contains the HTTP handlers fronting the quoting core.
// Handlers stay thin: bind, delegate to the domain, render.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/sokoflow/quote-go/internal/application/dto"
	"github.com/sokoflow/quote-go/internal/application/port"
	"github.com/sokoflow/quote-go/internal/domain/estimator"
	"github.com/sokoflow/quote-go/internal/domain/pricing"
	"github.com/sokoflow/quote-go/internal/domain/shipping"
)

// Handler serves the quoting API.
type Handler struct {
	estimates *estimator.Fallback
	pricing   *pricing.Engine
	shipping  *shipping.Calculator
	log       port.Logger
	version   string
	startTime time.Time
}

// New creates the API handler.
func New(
	estimates *estimator.Fallback,
	pricingEngine *pricing.Engine,
	shippingCalc *shipping.Calculator,
	log port.Logger,
	version string,
) *Handler {
	return &Handler{
		estimates: estimates,
		pricing:   pricingEngine,
		shipping:  shippingCalc,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// Routes mounts the API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimates/batch", h.EstimateBatch)
		r.Post("/quotes/shipping", h.ShippingQuote)
		r.Post("/quotes/price", h.PriceQuote)
	})
}

// EstimateBatch handles POST /api/v1/estimates/batch: it estimates every
// prompt of the batch and aggregates the billable weight.
func (h *Handler) EstimateBatch(w http.ResponseWriter, r *http.Request) {
	req := &dto.BatchEstimateRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, dto.ErrorResponse{Error: dto.ErrPromptsRequired.Error()})
		return
	}

	result := h.estimates.EstimateBatch(r.Context(), req.Prompts)

	h.log.WithContext(r.Context()).Info("batch estimated",
		"items", len(result.Items),
		"total_chargeable_kg", result.TotalChargeableWeightKg,
	)

	render.JSON(w, r, dto.NewBatchEstimateResponse(result))
}

// ShippingQuote handles POST /api/v1/quotes/shipping.
func (h *Handler) ShippingQuote(w http.ResponseWriter, r *http.Request) {
	req := &dto.ShippingQuoteRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, dto.ErrorResponse{Error: err.Error()})
		return
	}

	quote, err := h.shipping.Quote(*req.ChargeableWeightKg, req.IsInsured, req.CartTotalUSD)
	if err != nil {
		if errors.Is(err, shipping.ErrInvalidWeight) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, dto.ErrorResponse{Error: err.Error()})
			return
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, dto.ErrorResponse{Error: "failed to compute shipping quote"})
		return
	}

	render.JSON(w, r, dto.ShippingQuoteResponse{ShippingQuote: quote})
}

// PriceQuote handles POST /api/v1/quotes/price. Pricing never fails: an
// unusable source price renders the sentinel quote.
func (h *Handler) PriceQuote(w http.ResponseWriter, r *http.Request) {
	req := &dto.PriceQuoteRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, dto.ErrorResponse{Error: err.Error()})
		return
	}

	quote := h.pricing.PriceWithStorage(req.SourcePriceUSD, req.Condition, req.Title, req.StorageCapacity)

	render.JSON(w, r, dto.PriceQuoteResponse{
		PriceQuote: quote,
		Display:    quote.Display(),
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, dto.HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).String(),
	})
}

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, dto.ErrorResponse{Error: "The requested resource was not found"})
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusMethodNotAllowed)
	render.JSON(w, r, dto.ErrorResponse{Error: "The requested method is not allowed for this resource"})
}
