// Package shipping turns an aggregated chargeable weight and an insurance
// choice into a payable shipping total, broken down in both source (USD)
// and destination (KES) currency.
package shipping

import (
	"errors"
	"math"
)

// Shipping errors define the validation conditions of quote inputs.
var (
	// ErrInvalidWeight is returned for empty, non-numeric, or non-positive
	// weight input. No quote is produced.
	ErrInvalidWeight = errors.New("chargeable weight must be a positive number")
)

// MaxQuotableWeightKg is the heaviest shipment quotable online. Heavier
// requests are clamped and flagged for manual follow-up instead of failing.
const MaxQuotableWeightKg = 100.0

// AdvisoryContactSupport is attached to quotes whose weight was clamped.
const AdvisoryContactSupport = "weight exceeds 100 kg; contact support for a freight quote"

// InsuranceRate is the insurance premium as a fraction of cart value.
const InsuranceRate = 0.03

// ShippingQuote is the cost breakdown for one shipment.
// Invariant: TotalUSD = ShippingCostUSD + LastMileFeeUSD + InsuranceCostUSD.
type ShippingQuote struct {
	// ChargeableWeightKg is the billed weight after clamping.
	ChargeableWeightKg float64 `json:"chargeableWeightKg"`

	// ShippingCostUSD is the weight-based freight cost.
	ShippingCostUSD float64 `json:"shippingCostUSD"`

	// LastMileFeeUSD is the fixed hub-to-door delivery fee.
	LastMileFeeUSD float64 `json:"lastMileFeeUSD"`

	// InsuranceCostUSD is 3% of cart value when insured, else 0.
	InsuranceCostUSD float64 `json:"insuranceCostUSD"`

	// TotalUSD is the payable total in source currency.
	TotalUSD float64 `json:"totalUSD"`

	// TotalLocal is the payable total in KES.
	TotalLocal float64 `json:"totalLocal"`

	// Advisory carries a human-readable note (e.g. the clamp warning).
	Advisory string `json:"advisory,omitempty"`
}

// RateProfile prices the freight component of a shipment. Two models
// coexist in production pending product clarification on which is
// authoritative; both are kept as named, independently configurable
// profiles.
type RateProfile interface {
	// FreightUSD returns the weight-based shipping cost in USD.
	FreightUSD(weightKg float64) float64

	// LastMileUSD returns the fixed last-mile delivery fee in USD.
	LastMileUSD() float64

	// Name identifies the profile in configuration and logs.
	Name() string
}

// FlatPerKgProfile is the local-currency model: a flat base rate up to one
// kilogram, a per-kg rate beyond it, constants expressed in KES and
// converted to USD at a fixed rate.
type FlatPerKgProfile struct {
	// BaseRateKES is the flat charge for shipments of at most 1 kg.
	BaseRateKES float64

	// PerKgRateKES is the per-kilogram rate above 1 kg.
	PerKgRateKES float64

	// LastMileFeeKES is the fixed delivery fee from the regional hub.
	LastMileFeeKES float64

	// ExchangeRate converts the KES constants to USD.
	ExchangeRate float64
}

// DefaultFlatPerKgProfile returns the production KES rate card.
func DefaultFlatPerKgProfile() FlatPerKgProfile {
	return FlatPerKgProfile{
		BaseRateKES:    2080,
		PerKgRateKES:   2080,
		LastMileFeeKES: 650,
		ExchangeRate:   130,
	}
}

// FreightUSD implements RateProfile.
func (p FlatPerKgProfile) FreightUSD(weightKg float64) float64 {
	rateKES := p.BaseRateKES
	if weightKg > 1 {
		rateKES = weightKg * p.PerKgRateKES
	}
	return rateKES / p.ExchangeRate
}

// LastMileUSD implements RateProfile.
func (p FlatPerKgProfile) LastMileUSD() float64 {
	return p.LastMileFeeKES / p.ExchangeRate
}

// Name implements RateProfile.
func (p FlatPerKgProfile) Name() string { return "flat-per-kg-kes" }

// GraduatedTier is one band of the graduated USD model.
type GraduatedTier struct {
	// UpToKg is the inclusive upper bound of the band; 0 means open-ended.
	UpToKg float64

	// PerKgUSD is the rate charged for the whole shipment in this band.
	PerKgUSD float64
}

// GraduatedUSDProfile is the USD model: the per-kg rate steps down through
// weight bands, rewarding consolidated shipments.
type GraduatedUSDProfile struct {
	// Tiers must be sorted by ascending UpToKg with the open-ended band last.
	Tiers []GraduatedTier

	// MinChargeUSD floors the freight cost for very light shipments.
	MinChargeUSD float64

	// LastMileFeeUSD is the fixed delivery fee.
	LastMileFeeUSD float64
}

// DefaultGraduatedUSDProfile returns the production USD rate card.
func DefaultGraduatedUSDProfile() GraduatedUSDProfile {
	return GraduatedUSDProfile{
		Tiers: []GraduatedTier{
			{UpToKg: 1, PerKgUSD: 18},
			{UpToKg: 5, PerKgUSD: 16},
			{UpToKg: 10, PerKgUSD: 14},
			{UpToKg: 0, PerKgUSD: 12},
		},
		MinChargeUSD:   18,
		LastMileFeeUSD: 5,
	}
}

// FreightUSD implements RateProfile.
func (p GraduatedUSDProfile) FreightUSD(weightKg float64) float64 {
	rate := 0.0
	for _, tier := range p.Tiers {
		rate = tier.PerKgUSD
		if tier.UpToKg != 0 && weightKg <= tier.UpToKg {
			break
		}
	}
	return math.Max(weightKg*rate, p.MinChargeUSD)
}

// LastMileUSD implements RateProfile.
func (p GraduatedUSDProfile) LastMileUSD() float64 {
	return p.LastMileFeeUSD
}

// Name implements RateProfile.
func (p GraduatedUSDProfile) Name() string { return "graduated-usd" }

// Calculator produces shipping quotes. It is stateless and safe for
// concurrent use.
type Calculator struct {
	profile      RateProfile
	exchangeRate float64
}

// NewCalculator creates a Calculator over the given rate profile.
// exchangeRate converts the USD total into the local display total.
func NewCalculator(profile RateProfile, exchangeRate float64) *Calculator {
	return &Calculator{profile: profile, exchangeRate: exchangeRate}
}

// Quote prices a shipment.
//
// Parameters:
//   - chargeableWeightKg: billable weight; must be > 0. Values above 100
//     are clamped with a contact-support advisory rather than rejected.
//   - isInsured: whether insurance was kept on.
//   - cartTotalUSD: cart value used for the insurance premium.
//
// Returns:
//   - ShippingQuote: the cost breakdown
//   - error: ErrInvalidWeight for empty/NaN/non-positive weight
func (c *Calculator) Quote(chargeableWeightKg float64, isInsured bool, cartTotalUSD float64) (ShippingQuote, error) {
	if math.IsNaN(chargeableWeightKg) || math.IsInf(chargeableWeightKg, 0) || chargeableWeightKg <= 0 {
		return ShippingQuote{}, ErrInvalidWeight
	}

	advisory := ""
	if chargeableWeightKg > MaxQuotableWeightKg {
		chargeableWeightKg = MaxQuotableWeightKg
		advisory = AdvisoryContactSupport
	}

	freight := round2(c.profile.FreightUSD(chargeableWeightKg))
	lastMile := round2(c.profile.LastMileUSD())

	insurance := 0.0
	if isInsured {
		insurance = round2(cartTotalUSD * InsuranceRate)
	}

	totalUSD := round2(freight + lastMile + insurance)

	return ShippingQuote{
		ChargeableWeightKg: chargeableWeightKg,
		ShippingCostUSD:    freight,
		LastMileFeeUSD:     lastMile,
		InsuranceCostUSD:   insurance,
		TotalUSD:           totalUSD,
		TotalLocal:         math.Round(totalUSD * c.exchangeRate),
		Advisory:           advisory,
	}, nil
}

// ProfileName reports which rate profile the calculator is configured with.
func (c *Calculator) ProfileName() string {
	return c.profile.Name()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
