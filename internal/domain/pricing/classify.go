// Package pricing computes destination-currency retail prices for goods
// sourced in the US market and resold in Kenya. String classification
// (condition labels, market-opportunity SKUs) is kept separate from the
// numeric pricing math so each side stays independently testable.
package pricing

import (
	"strings"

	"github.com/samber/lo"
)

// ConditionClass is the normalized resale condition of a product.
type ConditionClass string

const (
	ConditionNew      ConditionClass = "new"
	ConditionRefurb   ConditionClass = "refurbished"
	ConditionVeryGood ConditionClass = "very-good"
	ConditionGood     ConditionClass = "good"
	ConditionUsed     ConditionClass = "used"
	ConditionForParts ConditionClass = "for-parts"
	ConditionUnknown  ConditionClass = "unknown"
)

// conditionRule maps raw label substrings to a class and its profit
// multiplier. Riskier conditions carry higher margin to absorb returns and
// refurbishment cost.
type conditionRule struct {
	substrings []string
	class      ConditionClass
	multiplier float64
}

// conditionRules are evaluated in order; the first substring hit wins.
// "very good" and "excellent" must precede "good", and "new" precedes
// everything so "like new" classifies as new.
var conditionRules = []conditionRule{
	{substrings: []string{"new"}, class: ConditionNew, multiplier: 1.00},
	{substrings: []string{"refurbished", "refurb"}, class: ConditionRefurb, multiplier: 1.08},
	{substrings: []string{"very good", "excellent"}, class: ConditionVeryGood, multiplier: 1.06},
	{substrings: []string{"good"}, class: ConditionGood, multiplier: 1.07},
	{substrings: []string{"used", "pre-owned"}, class: ConditionUsed, multiplier: 1.10},
	{substrings: []string{"parts", "damaged", "broken"}, class: ConditionForParts, multiplier: 1.15},
}

// profitBracket assigns a base profit percentage to a cost range.
// Margins decrease monotonically as cost rises: low-value items need high
// relative margin to cover fixed costs, while high-value items are priced
// for competitive and luxury positioning.
type profitBracket struct {
	upTo float64 // exclusive upper bound in KES; 0 means open-ended
	pct  float64
}

var profitBrackets = []profitBracket{
	{upTo: 5_000, pct: 0.25},
	{upTo: 15_000, pct: 0.20},
	{upTo: 30_000, pct: 0.16},
	{upTo: 60_000, pct: 0.13},
	{upTo: 100_000, pct: 0.10},
	{upTo: 0, pct: 0.08},
}

// skuOverride boosts margin on a high-demand SKU, but only while the landed
// cost sits below the stated ceiling: the boost models "this SKU is
// currently underpriced relative to its destination-market value".
type skuOverride struct {
	name       string
	ceilingKES float64
	multiplier float64
}

var skuOverrides = []skuOverride{
	{name: "ps5", ceilingKES: 95_000, multiplier: 1.12},
	{name: "iphone 15", ceilingKES: 160_000, multiplier: 1.10},
	{name: "iphone 14", ceilingKES: 120_000, multiplier: 1.08},
	{name: "galaxy s24", ceilingKES: 140_000, multiplier: 1.08},
	{name: "macbook", ceilingKES: 250_000, multiplier: 1.08},
	{name: "rtx 4090", ceilingKES: 320_000, multiplier: 1.10},
}

// keywordBonus is a secondary demand signal compounded on top of any SKU
// override.
type keywordBonus struct {
	keywords   []string
	multiplier float64
}

var keywordBonuses = []keywordBonus{
	{keywords: []string{"gaming", "rtx", "ps5"}, multiplier: 1.05},
	{keywords: []string{"unlocked", "international"}, multiplier: 1.03},
}

// ProductSignal is the normalized classification of a product, consumed by
// the pure pricing math in Engine.Price.
type ProductSignal struct {
	// Condition is the normalized resale condition.
	Condition ConditionClass `json:"condition"`

	// ConditionMultiplier is the margin adjustment for the condition.
	ConditionMultiplier float64 `json:"conditionMultiplier"`

	// MarketMultiplier is the compounded market-opportunity adjustment.
	MarketMultiplier float64 `json:"marketMultiplier"`

	// BaseProfitPct is the bracket margin for the landed cost.
	BaseProfitPct float64 `json:"baseProfitPct"`
}

// Classify derives the product signal from the landed cost, the raw
// condition label, and the listing title.
func Classify(baseCostLocal float64, condition, title string) ProductSignal {
	class, conditionMult := classifyCondition(condition)
	return ProductSignal{
		Condition:           class,
		ConditionMultiplier: conditionMult,
		MarketMultiplier:    marketMultiplier(baseCostLocal, title),
		BaseProfitPct:       baseProfitPct(baseCostLocal),
	}
}

// classifyCondition matches the lower-cased condition label against the
// rule table; first hit wins, unmatched labels price like new stock.
func classifyCondition(condition string) (ConditionClass, float64) {
	label := strings.ToLower(condition)
	for _, rule := range conditionRules {
		if lo.SomeBy(rule.substrings, func(s string) bool { return strings.Contains(label, s) }) {
			return rule.class, rule.multiplier
		}
	}
	return ConditionUnknown, 1.0
}

// baseProfitPct selects the base margin bracket for the landed cost.
func baseProfitPct(baseCostLocal float64) float64 {
	for _, bracket := range profitBrackets {
		if bracket.upTo == 0 || baseCostLocal < bracket.upTo {
			return bracket.pct
		}
	}
	return profitBrackets[len(profitBrackets)-1].pct
}

// marketMultiplier scans the title for high-demand SKU overrides (gated by
// their cost ceilings) and secondary keyword bonuses. All hits compound.
func marketMultiplier(baseCostLocal float64, title string) float64 {
	text := strings.ToLower(title)
	multiplier := 1.0

	for _, override := range skuOverrides {
		if strings.Contains(text, override.name) && baseCostLocal < override.ceilingKES {
			multiplier *= override.multiplier
		}
	}

	for _, bonus := range keywordBonuses {
		if lo.SomeBy(bonus.keywords, func(kw string) bool { return strings.Contains(text, kw) }) {
			multiplier *= bonus.multiplier
		}
	}

	return multiplier
}
