package rental

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPreDiscountCharge(t *testing.T) {
	tests := []struct {
		name       string
		daily      string
		chargeDays int
		want       string
	}{
		{"Ladder two days", "1.99", 2, "3.98"},
		{"Chainsaw three days", "1.49", 3, "4.47"},
		{"Jackhammer five days", "2.99", 5, "14.95"},
		{"No charge days", "2.99", 0, "0.00"},
		{"Half cent rounds up", "0.995", 1, "1.00"},
		{"Below half cent rounds down", "1.004", 1, "1.00"},
		{"Sub-cent rate accumulates", "0.333", 3, "1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreDiscountCharge(dec(tt.daily), tt.chargeDays)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name    string
		pre     string
		percent int
		want    string
	}{
		{"Ten percent", "3.98", 10, "0.40"},
		{"Quarter", "4.47", 25, "1.12"},
		{"Half", "5.98", 50, "2.99"},
		{"Zero percent", "13.93", 0, "0.00"},
		{"Full discount", "13.93", 100, "13.93"},
		{"Exact half cent rounds away from zero", "0.10", 5, "0.01"},
		{"Another half cent", "0.30", 5, "0.02"},
		{"Just below half cent", "0.09", 5, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountAmount(dec(tt.pre), tt.percent)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestFinalCharge(t *testing.T) {
	assert.Equal(t, "3.58", FinalCharge(dec("3.98"), dec("0.40")).StringFixed(2))
	assert.Equal(t, "3.35", FinalCharge(dec("4.47"), dec("1.12")).StringFixed(2))
	assert.Equal(t, "0.00", FinalCharge(dec("13.93"), dec("13.93")).StringFixed(2))
}
