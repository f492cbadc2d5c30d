package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "₹0.00"},
		{"small", 42.5, "₹42.50"},
		{"thousands", 5000, "₹5,000.00"},
		{"rounding", 7500.005, "₹7,500.01"},
		{"lakhs", 1234567.89, "₹1,234,567.89"},
		{"negative", -1234.56, "-₹1,234.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.amount))
		})
	}
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "1,234.56", Amount(1234.56))
	assert.Equal(t, "-1,234.56", Amount(-1234.56))
	assert.Equal(t, "987.00", Amount(987))
}

func TestYieldKg(t *testing.T) {
	assert.Equal(t, "1200.00 Kg/ha", YieldKg(1200))
	assert.Equal(t, "1.00 Kg/ha", YieldKg(1.0))
}
