package rental

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/username/tool-rental/pkg/dateutil"
)

// maxGrouped bounds the amounts whose dollars fit an int64 for grouping
var maxGrouped = decimal.New(1, 18)

// FormatCurrency formats an amount as US dollars, e.g. $1,234.50.
// The amount is rounded half away from zero to cents before formatting.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(moneyPlaces)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	fixed := rounded.StringFixed(moneyPlaces)
	dollars, cents := fixed[:len(fixed)-moneyPlaces-1], fixed[len(fixed)-moneyPlaces:]
	if rounded.LessThan(maxGrouped) {
		p := message.NewPrinter(language.AmericanEnglish)
		dollars = p.Sprintf("%v", number.Decimal(rounded.IntPart()))
	}

	return sign + "$" + dollars + "." + cents
}

// Print writes the agreement as a plain text document, one field per line
func (a *Agreement) Print(w io.Writer) error {
	lines := []struct {
		label string
		value string
	}{
		{"Tool code", a.ToolCode},
		{"Tool type", a.ToolType},
		{"Tool brand", a.ToolBrand},
		{"Rental days", fmt.Sprintf("%d", a.RentalDays)},
		{"Checkout date", dateutil.FormatShortDate(a.CheckoutDate)},
		{"Due date", dateutil.FormatShortDate(a.DueDate)},
		{"Daily rental charge", FormatCurrency(a.DailyCharge)},
		{"Charge days", fmt.Sprintf("%d", a.ChargeDays)},
		{"Pre-discount charge", FormatCurrency(a.PreDiscountCharge)},
		{"Discount percent", fmt.Sprintf("%d%%", a.DiscountPercent)},
		{"Discount amount", FormatCurrency(a.DiscountAmount)},
		{"Final charge", FormatCurrency(a.FinalCharge)},
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s: %s\n", line.label, line.value); err != nil {
			return fmt.Errorf("failed to print agreement: %w", err)
		}
	}
	return nil
}
