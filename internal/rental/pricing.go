package rental

import "github.com/shopspring/decimal"

// moneyPlaces is the number of fractional digits kept after every step
const moneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// PreDiscountCharge returns dailyCharge × chargeDays rounded half-up to cents
func PreDiscountCharge(dailyCharge decimal.Decimal, chargeDays int) decimal.Decimal {
	return dailyCharge.Mul(decimal.NewFromInt(int64(chargeDays))).Round(moneyPlaces)
}

// DiscountAmount returns preDiscountCharge × discountPercent / 100 rounded half-up to cents
func DiscountAmount(preDiscountCharge decimal.Decimal, discountPercent int) decimal.Decimal {
	return preDiscountCharge.Mul(decimal.NewFromInt(int64(discountPercent))).DivRound(hundred, moneyPlaces)
}

// FinalCharge returns preDiscountCharge − discountAmount rounded half-up to cents
func FinalCharge(preDiscountCharge, discountAmount decimal.Decimal) decimal.Decimal {
	return preDiscountCharge.Sub(discountAmount).Round(moneyPlaces)
}
