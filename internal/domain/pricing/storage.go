package pricing

import (
	"math"
	"strings"
)

// Storage multipliers are relative to the 128GB baseline: a discount below
// it, a premium above it. Apple storage upgrades command a steeper premium
// than Samsung's, and unknown brands get a conservative generic curve.
var storageMultipliers = map[string]map[string]float64{
	"iphone": {
		"64GB":  0.95,
		"128GB": 1.00,
		"256GB": 1.06,
		"512GB": 1.12,
		"1TB":   1.18,
	},
	"samsung": {
		"64GB":  0.96,
		"128GB": 1.00,
		"256GB": 1.05,
		"512GB": 1.10,
		"1TB":   1.15,
	},
	"generic": {
		"64GB":  0.97,
		"128GB": 1.00,
		"256GB": 1.04,
		"512GB": 1.08,
		"1TB":   1.12,
	},
}

// AdjustForStorage refines a priced quote for configurable-storage
// electronics. The brand table is chosen from the title, the tier from the
// capacity label; an empty or unrecognized capacity is a no-op.
//
// Parameters:
//   - priceLocal: the already-priced retail value in KES
//   - storageCapacity: capacity label like "256GB" or "1tb"
//   - title: listing title, used for brand detection
//
// Returns:
//   - float64: the adjusted price, rounded to whole shillings
func AdjustForStorage(priceLocal float64, storageCapacity, title string) float64 {
	tier := normalizeTier(storageCapacity)
	if tier == "" {
		return priceLocal
	}

	table := storageMultipliers[brandKey(title)]
	multiplier, ok := table[tier]
	if !ok {
		return priceLocal
	}

	return math.Round(priceLocal * multiplier)
}

// brandKey picks the storage table for a listing title.
func brandKey(title string) string {
	text := strings.ToLower(title)
	switch {
	case strings.Contains(text, "iphone"):
		return "iphone"
	case strings.Contains(text, "samsung"), strings.Contains(text, "galaxy"):
		return "samsung"
	default:
		return "generic"
	}
}

// normalizeTier canonicalizes capacity labels ("256 gb" -> "256GB").
func normalizeTier(capacity string) string {
	tier := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(capacity), " ", ""))
	return tier
}
