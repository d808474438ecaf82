package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"125000", "SSP 125,000"},
		{"0", "SSP 0"},
		{"999.49", "SSP 999"},
		{"999.5", "SSP 1,000"},
		{"1234567.89", "SSP 1,234,568"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format("SSP", dec(tt.amount)))
	}
}

func TestFormat_DefaultCurrency(t *testing.T) {
	assert.Equal(t, "SSP 12,000", Format("", dec("12000")))
	assert.Equal(t, "USD 12,000", Format("USD", dec("12000")))
}

func TestFormatExact(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"12000", "SSP 12,000.00"},
		{"12000.5", "SSP 12,000.50"},
		{"75.02", "SSP 75.02"},
		{"0.07", "SSP 0.07"},
		{"1234567.999", "SSP 1,234,568.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatExact("SSP", dec(tt.amount)))
	}
}
