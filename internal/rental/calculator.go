package rental

import (
	"github.com/username/tool-rental/internal/calendar"
	"github.com/username/tool-rental/internal/catalog"
	"github.com/username/tool-rental/pkg/dateutil"
	"go.uber.org/zap"
)

// MaxRentalDays is the longest rental a single checkout accepts
const MaxRentalDays = 3650

// Calculator computes rental agreements for tool checkouts.
// It holds only read-only collaborators, so one Calculator may serve
// concurrent checkouts.
type Calculator struct {
	catalog      catalog.Catalog
	calendar     calendar.Calendar
	centuryPivot int
	logger       *zap.Logger
}

// NewCalculator creates a new rental calculator
func NewCalculator(cat catalog.Catalog, cal calendar.Calendar, centuryPivot int, logger *zap.Logger) *Calculator {
	return &Calculator{
		catalog:      cat,
		calendar:     cal,
		centuryPivot: centuryPivot,
		logger:       logger,
	}
}

// GetCatalog returns the tool catalog
func (c *Calculator) GetCatalog() catalog.Catalog {
	return c.catalog
}

// GetCalendar returns the rental calendar
func (c *Calculator) GetCalendar() calendar.Calendar {
	return c.calendar
}

// Checkout validates the request and computes the rental agreement.
//
// Validation is fail-fast in this order: rental days, discount percent,
// tool code, checkout date. No agreement is returned on error.
func (c *Calculator) Checkout(toolCode string, rentalDays, discountPercent int, checkoutDate string) (*Agreement, error) {
	c.logger.Info("Checking out tool",
		zap.String("tool_code", toolCode),
		zap.Int("rental_days", rentalDays),
		zap.Int("discount_percent", discountPercent),
		zap.String("checkout_date", checkoutDate))

	// 1. Validate request
	if rentalDays < 1 {
		c.logger.Warn("Invalid rental days", zap.Int("rental_days", rentalDays))
		return nil, invalidArgument("rental days must be 1 or greater")
	}
	if rentalDays > MaxRentalDays {
		c.logger.Warn("Invalid rental days", zap.Int("rental_days", rentalDays))
		return nil, invalidArgument("rental days must be %d or fewer", MaxRentalDays)
	}
	if discountPercent < 0 || discountPercent > 100 {
		c.logger.Warn("Invalid discount percent", zap.Int("discount_percent", discountPercent))
		return nil, invalidArgument("discount percent must be between 0 and 100 inclusive")
	}

	// 2. Resolve tool
	tool, ok := c.catalog.FindByCode(toolCode)
	if !ok {
		c.logger.Warn("Tool does not exist", zap.String("tool_code", toolCode))
		return nil, invalidArgument("tool %s does not exist", toolCode)
	}

	// 3. Parse checkout date
	checkout, err := dateutil.ParseShortDate(checkoutDate, c.centuryPivot)
	if err != nil {
		c.logger.Warn("Invalid checkout date",
			zap.String("checkout_date", checkoutDate),
			zap.Error(err))
		return nil, &DateParseError{Input: checkoutDate, Err: err}
	}

	// 4. Chargeable days over [checkout, checkout+rentalDays)
	chargeDays := calendar.CountChargeableDays(c.calendar, checkout, rentalDays)
	dueDate := dateutil.AddDays(checkout, rentalDays)

	// 5. Charges
	preDiscount := PreDiscountCharge(tool.DailyCharge, chargeDays)
	discount := DiscountAmount(preDiscount, discountPercent)
	final := FinalCharge(preDiscount, discount)

	c.logger.Debug("Charges calculated",
		zap.String("tool_code", tool.Code),
		zap.Int("charge_days", chargeDays),
		zap.String("due_date", dateutil.FormatShortDate(dueDate)),
		zap.String("pre_discount_charge", preDiscount.StringFixed(moneyPlaces)),
		zap.String("discount_amount", discount.StringFixed(moneyPlaces)),
		zap.String("final_charge", final.StringFixed(moneyPlaces)))

	agreement := NewAgreement(tool, rentalDays, checkout, dueDate, chargeDays, preDiscount, discountPercent, discount, final)

	c.logger.Info("Rental agreement created",
		zap.String("tool_code", agreement.ToolCode),
		zap.Int("charge_days", agreement.ChargeDays),
		zap.String("final_charge", agreement.FinalCharge.StringFixed(moneyPlaces)))

	return agreement, nil
}
