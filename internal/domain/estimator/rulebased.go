package estimator

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/sokoflow/quote-go/internal/domain/catalog"
)

// adjustmentRule scales an estimate when one of its keywords appears in the
// description. A rule contributes its multipliers once no matter how many of
// its keywords match; distinct rules compound multiplicatively.
type adjustmentRule struct {
	keywords   []string
	weightMult float64
	dimMult    float64
}

var sizeRules = []adjustmentRule{
	{keywords: []string{"xl", "extra large"}, weightMult: 1.4, dimMult: 1.3},
	{keywords: []string{"pro", "max", "plus", "large"}, weightMult: 1.2, dimMult: 1.1},
	{keywords: []string{"mini", "compact", "small"}, weightMult: 0.7, dimMult: 0.8},
}

var materialRules = []adjustmentRule{
	{keywords: []string{"aluminum", "metal", "steel"}, weightMult: 1.1, dimMult: 1.0},
	{keywords: []string{"plastic", "lightweight"}, weightMult: 0.9, dimMult: 1.0},
}

// RuleBased estimates weight by matching descriptions against the category
// catalog. It is a total function: any input, including empty or gibberish
// text, yields a usable estimate.
type RuleBased struct{}

// NewRuleBased creates a rule-based estimator over the static catalog.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// EstimateWeight implements the Estimator strategy contract. The error is
// always nil; it exists only to satisfy the shared interface.
func (r *RuleBased) EstimateWeight(_ context.Context, description string) (WeightEstimate, error) {
	return r.Estimate(description), nil
}

// Estimate classifies the description and derives its billable weight.
//
// Classification picks the category with the most matched keywords,
// tie-broken by the summed length of the matches so that longer, more
// specific keywords outrank short generic ones. Descriptions matching no
// category fall through to the default profile with medium confidence.
func (r *RuleBased) Estimate(description string) WeightEstimate {
	text := strings.ToLower(description)

	best := catalog.Default()
	bestCount := 0
	bestScore := 0

	for _, profile := range catalog.Profiles() {
		matched := lo.Filter(profile.Keywords, func(kw string, _ int) bool {
			return strings.Contains(text, kw)
		})
		if len(matched) == 0 {
			continue
		}
		score := lo.SumBy(matched, func(kw string) int { return len(kw) })

		if len(matched) > bestCount || (len(matched) == bestCount && score > bestScore) {
			best = profile
			bestCount = len(matched)
			bestScore = score
		}
	}

	confidence := ConfidenceMedium
	if bestCount > 0 {
		confidence = ConfidenceHigh
	}

	weightMult, dimMult := adjustments(text)

	real := best.Weights.Typical * weightMult
	dims := best.Dimensions.Scale(dimMult)

	return NewWeightEstimate(real, dims, best.Category, confidence, SourceRuleBased)
}

// adjustments compounds the size and material multipliers found in text.
func adjustments(text string) (weightMult, dimMult float64) {
	weightMult, dimMult = 1.0, 1.0

	xl := ruleMatches(sizeRules[0], text)
	for i, rule := range sizeRules {
		if i == 0 {
			if xl {
				weightMult *= rule.weightMult
				dimMult *= rule.dimMult
			}
			continue
		}
		if sizeRuleMatches(rule, text, xl) {
			weightMult *= rule.weightMult
			dimMult *= rule.dimMult
		}
	}

	for _, rule := range materialRules {
		if ruleMatches(rule, text) {
			weightMult *= rule.weightMult
			dimMult *= rule.dimMult
		}
	}

	return weightMult, dimMult
}

func ruleMatches(rule adjustmentRule, text string) bool {
	return lo.SomeBy(rule.keywords, func(kw string) bool {
		return strings.Contains(text, kw)
	})
}

// sizeRuleMatches ignores a "large" hit that is only the tail of
// "extra large", which belongs to the xl rule.
func sizeRuleMatches(rule adjustmentRule, text string, xl bool) bool {
	return lo.SomeBy(rule.keywords, func(kw string) bool {
		if kw == "large" && xl && !strings.Contains(strings.ReplaceAll(text, "extra large", ""), "large") {
			return false
		}
		return strings.Contains(text, kw)
	})
}
