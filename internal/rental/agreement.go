package rental

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/tool-rental/internal/catalog"
)

// isoDate is the JSON date layout
const isoDate = "2006-01-02"

// Agreement represents the outcome of one checkout. It is built in one
// piece by NewAgreement and handed to the caller, which owns it.
type Agreement struct {
	ToolCode          string
	ToolType          string
	ToolBrand         string
	RentalDays        int
	CheckoutDate      time.Time
	DueDate           time.Time
	DailyCharge       decimal.Decimal
	ChargeDays        int
	PreDiscountCharge decimal.Decimal
	DiscountPercent   int
	DiscountAmount    decimal.Decimal
	FinalCharge       decimal.Decimal
}

// NewAgreement assembles an agreement from fully computed values
func NewAgreement(
	tool catalog.Tool,
	rentalDays int,
	checkoutDate time.Time,
	dueDate time.Time,
	chargeDays int,
	preDiscountCharge decimal.Decimal,
	discountPercent int,
	discountAmount decimal.Decimal,
	finalCharge decimal.Decimal,
) *Agreement {
	return &Agreement{
		ToolCode:          tool.Code,
		ToolType:          tool.Type,
		ToolBrand:         tool.Brand,
		RentalDays:        rentalDays,
		CheckoutDate:      checkoutDate,
		DueDate:           dueDate,
		DailyCharge:       tool.DailyCharge,
		ChargeDays:        chargeDays,
		PreDiscountCharge: preDiscountCharge,
		DiscountPercent:   discountPercent,
		DiscountAmount:    discountAmount,
		FinalCharge:       finalCharge,
	}
}

// agreementJSON is the wire form: ISO dates and amounts as fixed two-place strings
type agreementJSON struct {
	ToolCode          string `json:"tool_code"`
	ToolType          string `json:"tool_type"`
	ToolBrand         string `json:"tool_brand"`
	RentalDays        int    `json:"rental_days"`
	CheckoutDate      string `json:"checkout_date"`
	DueDate           string `json:"due_date"`
	DailyCharge       string `json:"daily_charge"`
	ChargeDays        int    `json:"charge_days"`
	PreDiscountCharge string `json:"pre_discount_charge"`
	DiscountPercent   int    `json:"discount_percent"`
	DiscountAmount    string `json:"discount_amount"`
	FinalCharge       string `json:"final_charge"`
}

// MarshalJSON implements json.Marshaler
func (a Agreement) MarshalJSON() ([]byte, error) {
	return json.Marshal(agreementJSON{
		ToolCode:          a.ToolCode,
		ToolType:          a.ToolType,
		ToolBrand:         a.ToolBrand,
		RentalDays:        a.RentalDays,
		CheckoutDate:      a.CheckoutDate.Format(isoDate),
		DueDate:           a.DueDate.Format(isoDate),
		DailyCharge:       a.DailyCharge.StringFixed(moneyPlaces),
		ChargeDays:        a.ChargeDays,
		PreDiscountCharge: a.PreDiscountCharge.StringFixed(moneyPlaces),
		DiscountPercent:   a.DiscountPercent,
		DiscountAmount:    a.DiscountAmount.StringFixed(moneyPlaces),
		FinalCharge:       a.FinalCharge.StringFixed(moneyPlaces),
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Agreement) UnmarshalJSON(data []byte) error {
	var raw agreementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	checkout, err := time.Parse(isoDate, raw.CheckoutDate)
	if err != nil {
		return fmt.Errorf("invalid checkout_date: %w", err)
	}
	due, err := time.Parse(isoDate, raw.DueDate)
	if err != nil {
		return fmt.Errorf("invalid due_date: %w", err)
	}

	var daily, pre, discount, final decimal.Decimal
	for _, f := range []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"daily_charge", raw.DailyCharge, &daily},
		{"pre_discount_charge", raw.PreDiscountCharge, &pre},
		{"discount_amount", raw.DiscountAmount, &discount},
		{"final_charge", raw.FinalCharge, &final},
	} {
		v, err := decimal.NewFromString(f.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		*f.dst = v
	}

	*a = Agreement{
		ToolCode:          raw.ToolCode,
		ToolType:          raw.ToolType,
		ToolBrand:         raw.ToolBrand,
		RentalDays:        raw.RentalDays,
		CheckoutDate:      checkout,
		DueDate:           due,
		DailyCharge:       daily,
		ChargeDays:        raw.ChargeDays,
		PreDiscountCharge: pre,
		DiscountPercent:   raw.DiscountPercent,
		DiscountAmount:    discount,
		FinalCharge:       final,
	}
	return nil
}
