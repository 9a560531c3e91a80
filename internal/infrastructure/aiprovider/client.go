// Package aiprovider is the adapter for the external text-completion
// service used for weight estimation. It implements the estimator.Estimator
// strategy contract; every failure surfaces as an estimator.ProviderError
// so the fallback policy can take over.
package aiprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sokoflow/quote-go/internal/application/port"
	"github.com/sokoflow/quote-go/internal/domain/catalog"
	"github.com/sokoflow/quote-go/internal/domain/estimator"
	"github.com/sokoflow/quote-go/internal/domain/valueobject"
	"github.com/sokoflow/quote-go/pkg/httpx"
)

// minRealWeightKg guards against a zero or missing provider weight silently
// defaulting downstream.
const minRealWeightKg = 0.1

// Config holds the provider connection settings.
type Config struct {
	// BaseURL is the provider origin (e.g. "https://api.openai.com").
	BaseURL string

	// Model is the completion model name.
	Model string

	// RequestTimeout bounds a single provider call.
	RequestTimeout time.Duration
}

// Client calls a chat-completion endpoint and parses its strict-JSON
// estimate payload.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        port.Logger
}

// NewClient builds a provider client. Outbound calls carry bearer auth from
// tokens and structured call logging.
func NewClient(cfg Config, tokens port.TokenProvider, log port.Logger) *Client {
	transport := httpx.NewLoggingRoundTripper(
		httpx.NewAuthBearerRoundTripper(nil, tokens),
		log,
	)

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		log: log,
	}
}

// chatRequest is the provider wire format for a completion call.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the provider response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// estimatePayload is the strict-JSON object the prompt instructs the model
// to return.
type estimatePayload struct {
	RealWeight float64 `json:"realWeight"`
	Dimensions struct {
		Length float64 `json:"length"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"dimensions"`
	Category   string `json:"category"`
	Confidence string `json:"confidence"`
}

// EstimateWeight implements estimator.Estimator via a single provider call.
// Unreachable service, non-2xx responses, and malformed payloads all return
// a ProviderError; retrying is the caller's policy, not the client's.
func (c *Client) EstimateWeight(ctx context.Context, description string) (estimator.WeightEstimate, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(description)},
		},
		Temperature: 0.1,
		MaxTokens:   200,
	})
	if err != nil {
		return estimator.WeightEstimate{}, estimator.NewProviderError(0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return estimator.WeightEstimate{}, estimator.NewProviderError(0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return estimator.WeightEstimate{}, estimator.NewProviderError(0,
			fmt.Errorf("%w: %v", estimator.ErrProviderUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return estimator.WeightEstimate{}, estimator.NewProviderError(resp.StatusCode,
			fmt.Errorf("unexpected status %s", resp.Status))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return estimator.WeightEstimate{}, estimator.NewProviderError(0, err)
	}

	var completion chatResponse
	if err := json.Unmarshal(raw, &completion); err != nil || len(completion.Choices) == 0 {
		return estimator.WeightEstimate{}, estimator.NewProviderError(0, estimator.ErrMalformedResponse)
	}

	var payload estimatePayload
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
		return estimator.WeightEstimate{}, estimator.NewProviderError(0,
			fmt.Errorf("%w: %v", estimator.ErrMalformedResponse, err))
	}

	return toEstimate(payload), nil
}

// toEstimate converts the provider payload into a domain estimate,
// clamping unusable weights and normalizing category and confidence.
func toEstimate(payload estimatePayload) estimator.WeightEstimate {
	real := payload.RealWeight
	if real <= 0 {
		real = minRealWeightKg
	}

	dims := valueobject.NewDimensions(
		payload.Dimensions.Length,
		payload.Dimensions.Width,
		payload.Dimensions.Height,
	)

	category := catalog.ProfileFor(catalog.Category(strings.ToLower(payload.Category))).Category

	return estimator.NewWeightEstimate(real, dims, category, normalizeConfidence(payload.Confidence), estimator.SourceAI)
}

// normalizeConfidence maps free-form provider confidence to the closed set.
func normalizeConfidence(raw string) estimator.Confidence {
	switch strings.ToLower(raw) {
	case string(estimator.ConfidenceHigh):
		return estimator.ConfidenceHigh
	case string(estimator.ConfidenceLow):
		return estimator.ConfidenceLow
	default:
		return estimator.ConfidenceMedium
	}
}

// buildPrompt instructs the model to answer with only the strict-JSON
// estimate object.
func buildPrompt(description string) string {
	return `Estimate the shipping weight and packaged dimensions of the following product.
Respond with ONLY a JSON object, no prose, in exactly this shape:
{"realWeight": <kg>, "dimensions": {"length": <cm>, "width": <cm>, "height": <cm>}, "category": "<phone|laptop|tablet|console|book|clothing|beauty|home|default>", "confidence": "<high|medium|low>"}

Product: ` + description
}
