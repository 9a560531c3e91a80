// Package valueobject contains value objects that represent concepts without identity.
// Value objects are immutable and compared by their attributes rather than identity.
// They encapsulate validation logic and ensure data integrity.
//
// Value Objects follow these principles:
//   - Immutability: Once created, they cannot be changed.
//   - Equality: Two value objects are equal if all their attributes are equal.
//   - Self-validation: They validate their own data upon creation.
//   - Side-effect free: Methods return new instances rather than modifying state.
package valueobject

import (
	"fmt"
	"math"
	"strings"
)

// Currency represents a monetary currency using ISO 4217 codes.
type Currency string

// Supported currencies in the system.
const (
	CurrencyUSD Currency = "USD" // US Dollar (source market)
	CurrencyKES Currency = "KES" // Kenyan Shilling (destination market)
)

// Money represents a monetary value with currency.
// Quoting amounts are fractional by nature (per-kg rates, percentage fees),
// so amounts are held as float64 and rounded only at display boundaries.
//
// Example usage:
//
//	price := valueobject.NewMoney(19.99, valueobject.CurrencyUSD)
//	total := price.MultiplyFloat(3) // USD 59.97
type Money struct {
	// Amount in major currency units (e.g., dollars, shillings).
	Amount float64 `json:"amount"`

	// Currency using ISO 4217 code.
	Currency Currency `json:"currency"`
}

// NewMoney creates a new Money value object.
func NewMoney(amount float64, currency Currency) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// Add adds another Money of the same currency and returns a new Money.
// Mixed-currency sums are a programming error and panic.
func (m Money) Add(other Money) Money {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("currency mismatch: %s + %s", m.Currency, other.Currency))
	}
	return NewMoney(m.Amount+other.Amount, m.Currency)
}

// MultiplyFloat multiplies the amount by a factor and returns a new Money.
// Useful for applying percentage fees and profit margins.
func (m Money) MultiplyFloat(factor float64) Money {
	return NewMoney(m.Amount*factor, m.Currency)
}

// Round2 returns the Money rounded to two decimal places.
func (m Money) Round2() Money {
	return NewMoney(math.Round(m.Amount*100)/100, m.Currency)
}

// RoundWhole returns the Money rounded to the nearest whole unit.
// Destination-currency retail prices are quoted in whole shillings.
func (m Money) RoundWhole() Money {
	return NewMoney(math.Round(m.Amount), m.Currency)
}

// IsZero checks if the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsPositive checks if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount > 0
}

// String returns a formatted string representation (e.g., "USD 19.99").
func (m Money) String() string {
	return fmt.Sprintf("%s %.2f", m.Currency, m.Amount)
}

// Display returns the customer-facing representation of the Money.
// KES amounts are whole-shilling with thousands separators ("Ksh 148,936"),
// USD amounts keep cents ("$30.00").
func (m Money) Display() string {
	switch m.Currency {
	case CurrencyKES:
		return "Ksh " + groupThousands(int64(math.Round(m.Amount)))
	case CurrencyUSD:
		return fmt.Sprintf("$%.2f", m.Amount)
	default:
		return m.String()
	}
}

// groupThousands formats n with comma separators.
func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
