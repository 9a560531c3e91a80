package pricing

import (
	"math"

	"github.com/sokoflow/quote-go/internal/domain/valueobject"
)

// Rates holds the currency-conversion overlays applied before any profit
// margin. They model what the bank and card network actually charge on a
// cross-border purchase.
type Rates struct {
	// ExchangeRate is the base KES-per-USD rate.
	ExchangeRate float64

	// BankMarkupPct is the bank's spread on the exchange rate (e.g. 0.02).
	BankMarkupPct float64

	// CardFeePct is the credit-card/international-transaction fee applied
	// on top of the marked-up conversion (e.g. 0.04).
	CardFeePct float64
}

// DefaultRates returns the production conversion overlays.
func DefaultRates() Rates {
	return Rates{
		ExchangeRate:  130.0,
		BankMarkupPct: 0.02,
		CardFeePct:    0.04,
	}
}

// PriceQuote is the full pricing breakdown for one product. It is a value
// object created per request and never persisted.
type PriceQuote struct {
	// SourcePriceUSD is the source-market price.
	SourcePriceUSD float64 `json:"sourcePriceUSD"`

	// BaseCostLocal is the landed cost in KES after all conversion overlays.
	BaseCostLocal float64 `json:"baseCostLocal"`

	// BankFeesLocal is the card/international-transaction fee in KES.
	BankFeesLocal float64 `json:"bankFeesLocal"`

	// ExchangeMarkupLocal is the bank's exchange-rate spread in KES.
	ExchangeMarkupLocal float64 `json:"exchangeMarkupLocal"`

	// BaseProfitPct is the bracket margin before adjustments.
	BaseProfitPct float64 `json:"baseProfitPct"`

	// ConditionMultiplier is the margin adjustment for resale condition.
	ConditionMultiplier float64 `json:"conditionMultiplier"`

	// MarketMultiplier is the market-opportunity margin adjustment.
	MarketMultiplier float64 `json:"marketMultiplier"`

	// FinalProfitPct is the compounded margin:
	// BaseProfitPct * ConditionMultiplier * MarketMultiplier.
	FinalProfitPct float64 `json:"finalProfitPct"`

	// FinalPriceLocal is the retail price in whole KES.
	FinalPriceLocal float64 `json:"finalPriceLocal"`

	// Unavailable marks the sentinel result for an unusable source price.
	// Pricing is called from render paths that must never crash, so a bad
	// input yields this instead of an error.
	Unavailable bool `json:"unavailable,omitempty"`
}

// Display returns the customer-facing price string ("Ksh 148,936"), or the
// "price unavailable" sentinel text.
func (q PriceQuote) Display() string {
	if q.Unavailable {
		return "Price unavailable"
	}
	return valueobject.NewMoney(q.FinalPriceLocal, valueobject.CurrencyKES).Display()
}

// Engine is the profit-margin pricing engine. It is stateless and safe for
// concurrent use.
type Engine struct {
	rates Rates
}

// NewEngine creates a pricing engine with the given conversion overlays.
func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

// Price computes the destination-currency retail price for a product.
//
// Steps, in order:
//  1. Convert the source price at the bank-inflated exchange rate.
//  2. Add the card/international-transaction fee, yielding the landed cost.
//  3. Classify the product (margin bracket, condition, market signals).
//  4. Compound the margin multiplicatively and round to whole shillings.
//
// A non-finite or non-positive source price yields the unavailable
// sentinel rather than an error.
func (e *Engine) Price(sourcePriceUSD float64, condition, title string) PriceQuote {
	if !isUsablePrice(sourcePriceUSD) {
		return PriceQuote{SourcePriceUSD: sourcePriceUSD, Unavailable: true}
	}

	converted := sourcePriceUSD * e.rates.ExchangeRate
	exchangeMarkup := converted * e.rates.BankMarkupPct
	bankFees := (converted + exchangeMarkup) * e.rates.CardFeePct
	baseCost := converted + exchangeMarkup + bankFees

	signal := Classify(baseCost, condition, title)

	finalProfit := signal.BaseProfitPct * signal.ConditionMultiplier * signal.MarketMultiplier

	return PriceQuote{
		SourcePriceUSD:      sourcePriceUSD,
		BaseCostLocal:       baseCost,
		BankFeesLocal:       bankFees,
		ExchangeMarkupLocal: exchangeMarkup,
		BaseProfitPct:       signal.BaseProfitPct,
		ConditionMultiplier: signal.ConditionMultiplier,
		MarketMultiplier:    signal.MarketMultiplier,
		FinalProfitPct:      finalProfit,
		FinalPriceLocal:     math.Round(baseCost * (1 + finalProfit)),
	}
}

// PriceWithStorage prices the product and then applies the storage-capacity
// adjustment for configurable-storage electronics. An empty capacity leaves
// the price untouched.
func (e *Engine) PriceWithStorage(sourcePriceUSD float64, condition, title, storageCapacity string) PriceQuote {
	quote := e.Price(sourcePriceUSD, condition, title)
	if quote.Unavailable {
		return quote
	}
	quote.FinalPriceLocal = AdjustForStorage(quote.FinalPriceLocal, storageCapacity, title)
	return quote
}

// FormatPrice is the display-oriented entry point consumed by checkout
// collaborators: it returns only the formatted "Ksh N" string.
func (e *Engine) FormatPrice(sourcePriceUSD float64, condition, title string) string {
	return e.Price(sourcePriceUSD, condition, title).Display()
}

// FormatPriceWithStorage is the storage-aware variant of FormatPrice.
func (e *Engine) FormatPriceWithStorage(sourcePriceUSD float64, condition, title, storageCapacity string) string {
	return e.PriceWithStorage(sourcePriceUSD, condition, title, storageCapacity).Display()
}

// isUsablePrice rejects NaN, infinities, and non-positive prices.
func isUsablePrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
