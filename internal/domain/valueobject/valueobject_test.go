package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sokoflow/quote-go/internal/domain/valueobject"
)

func TestMoneyDisplay(t *testing.T) {
	tests := []struct {
		name     string
		money    valueobject.Money
		expected string
	}{
		{
			name:     "KES whole shillings with thousands separators",
			money:    valueobject.NewMoney(148936, valueobject.CurrencyKES),
			expected: "Ksh 148,936",
		},
		{
			name:     "KES below a thousand",
			money:    valueobject.NewMoney(650, valueobject.CurrencyKES),
			expected: "Ksh 650",
		},
		{
			name:     "KES rounds fractional shillings",
			money:    valueobject.NewMoney(1999.6, valueobject.CurrencyKES),
			expected: "Ksh 2,000",
		},
		{
			name:     "USD keeps cents",
			money:    valueobject.NewMoney(30, valueobject.CurrencyUSD),
			expected: "$30.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.money.Display())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	price := valueobject.NewMoney(100, valueobject.CurrencyUSD)

	total := price.MultiplyFloat(1.03).Round2()
	assert.InDelta(t, 103.0, total.Amount, 1e-9)

	sum := price.Add(valueobject.NewMoney(30, valueobject.CurrencyUSD))
	assert.InDelta(t, 130.0, sum.Amount, 1e-9)

	assert.Panics(t, func() {
		price.Add(valueobject.NewMoney(1, valueobject.CurrencyKES))
	})
}

func TestDimensionsVolumetricWeight(t *testing.T) {
	dims := valueobject.NewDimensions(39, 26, 10.4)

	assert.InDelta(t, 10545.6, dims.Volume(), 1e-6)
	assert.InDelta(t, 2.10912, dims.VolumetricWeight(), 1e-6)
}

func TestDimensionsScale(t *testing.T) {
	dims := valueobject.NewDimensions(30, 20, 10).Scale(1.1)

	assert.InDelta(t, 33.0, dims.Length, 1e-9)
	assert.InDelta(t, 22.0, dims.Width, 1e-9)
	assert.InDelta(t, 11.0, dims.Height, 1e-9)
}

func TestDimensionsIsEmpty(t *testing.T) {
	assert.True(t, valueobject.Dimensions{}.IsEmpty())
	assert.False(t, valueobject.NewDimensions(1, 0, 0).IsEmpty())
}
