package catalog

import (
	"github.com/shopspring/decimal"
)

// Tool represents a rentable tool and its pricing
type Tool struct {
	Code        string          `json:"code"`
	Type        string          `json:"type"`
	Brand       string          `json:"brand"`
	DailyCharge decimal.Decimal `json:"daily_charge"`

	// Charge flags are reference data only; chargeable days are decided by
	// the rental calendar for every tool.
	ChargesOnWeekday bool `json:"weekday_charge"`
	ChargesOnWeekend bool `json:"weekend_charge"`
	ChargesOnHoliday bool `json:"holiday_charge"`
}

// Catalog interface for looking up tools by code
type Catalog interface {
	// FindByCode returns the tool with the given code
	FindByCode(code string) (Tool, bool)

	// List returns all tools sorted by code
	List() []Tool
}

// DefaultTools returns the built-in rental inventory
func DefaultTools() []Tool {
	return []Tool{
		{
			Code:             "CHNS",
			Type:             "Chainsaw",
			Brand:            "Stihl",
			DailyCharge:      decimal.RequireFromString("1.49"),
			ChargesOnWeekday: true,
			ChargesOnWeekend: false,
			ChargesOnHoliday: true,
		},
		{
			Code:             "LADW",
			Type:             "Ladder",
			Brand:            "Werner",
			DailyCharge:      decimal.RequireFromString("1.99"),
			ChargesOnWeekday: true,
			ChargesOnWeekend: true,
			ChargesOnHoliday: false,
		},
		{
			Code:             "JAKD",
			Type:             "Jackhammer",
			Brand:            "DeWalt",
			DailyCharge:      decimal.RequireFromString("2.99"),
			ChargesOnWeekday: true,
			ChargesOnWeekend: false,
			ChargesOnHoliday: false,
		},
		{
			Code:             "JAKR",
			Type:             "Jackhammer",
			Brand:            "Ridgid",
			DailyCharge:      decimal.RequireFromString("2.99"),
			ChargesOnWeekday: true,
			ChargesOnWeekend: false,
			ChargesOnHoliday: false,
		},
	}
}
