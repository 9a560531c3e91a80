// Package estimator turns free-text product descriptions into billable
// shipping weights. Two strategies implement the same contract: an AI
// text-estimation call and a deterministic rule-based matcher, composed by
// a fallback estimator that owns the retry policy.
package estimator

import (
	"context"
	"math"

	"github.com/sokoflow/quote-go/internal/domain/catalog"
	"github.com/sokoflow/quote-go/internal/domain/valueobject"
)

// Source identifies which strategy produced an estimate.
type Source string

const (
	// SourceAI marks estimates produced by the AI provider.
	SourceAI Source = "ai"

	// SourceRuleBased marks estimates produced by keyword matching.
	SourceRuleBased Source = "rule-based"
)

// Confidence grades how reliable an estimate is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// WeightEstimate is the result of estimating one product description.
// Invariants: ChargeableWeightKg = max(RealWeightKg, VolumetricWeightKg)
// and VolumetricWeightKg = (L*W*H)/5000. Estimates are created fresh per
// call and never persisted.
type WeightEstimate struct {
	// RealWeightKg is the estimated scale weight, always > 0.
	RealWeightKg float64 `json:"realWeightKg"`

	// Dimensions is the estimated packaged size in cm.
	Dimensions valueobject.Dimensions `json:"dimensions"`

	// VolumetricWeightKg is the dimensional weight derived from Dimensions.
	VolumetricWeightKg float64 `json:"volumetricWeightKg"`

	// ChargeableWeightKg is the billable weight.
	ChargeableWeightKg float64 `json:"chargeableWeightKg"`

	// Category is the classified product category.
	Category catalog.Category `json:"category"`

	// Confidence grades the estimate.
	Confidence Confidence `json:"confidence"`

	// Source identifies the producing strategy.
	Source Source `json:"source"`
}

// Estimator is the strategy contract shared by the AI and rule-based
// implementations. Implementations must not mutate shared state.
type Estimator interface {
	// EstimateWeight estimates the shipping weight of one description.
	EstimateWeight(ctx context.Context, description string) (WeightEstimate, error)
}

// NewWeightEstimate derives the volumetric and chargeable weights from the
// real weight and dimensions, enforcing the estimate invariants.
func NewWeightEstimate(
	realKg float64,
	dims valueobject.Dimensions,
	category catalog.Category,
	confidence Confidence,
	source Source,
) WeightEstimate {
	volumetric := round2(dims.VolumetricWeight())
	real := round2(realKg)
	return WeightEstimate{
		RealWeightKg:       real,
		Dimensions:         dims,
		VolumetricWeightKg: volumetric,
		ChargeableWeightKg: math.Max(real, volumetric),
		Category:           category,
		Confidence:         confidence,
		Source:             source,
	}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
