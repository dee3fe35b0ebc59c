package rental_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/username/tool-rental/internal/calendar"
	"github.com/username/tool-rental/internal/catalog"
	"github.com/username/tool-rental/internal/rental"
	"github.com/username/tool-rental/pkg/dateutil"
)

type checkoutTestContext struct {
	tools     map[string]catalog.Tool
	agreement *rental.Agreement
	err       error
}

func (c *checkoutTestContext) reset() {
	c.tools = make(map[string]catalog.Tool)
	c.agreement = nil
	c.err = nil
}

func (c *checkoutTestContext) theBuiltInToolInventory() error {
	for _, tool := range catalog.DefaultTools() {
		c.tools[tool.Code] = tool
	}
	return nil
}

func (c *checkoutTestContext) aToolOfTypeByChargingPerDay(code, toolType, brand, charge string) error {
	daily, err := decimal.NewFromString(charge)
	if err != nil {
		return err
	}
	c.tools[code] = catalog.Tool{
		Code:             code,
		Type:             toolType,
		Brand:            brand,
		DailyCharge:      daily,
		ChargesOnWeekday: true,
	}
	return nil
}

func (c *checkoutTestContext) iCheckOutForDaysWithDiscountOn(code string, days, discount int, date string) error {
	tools := make([]catalog.Tool, 0, len(c.tools))
	for _, tool := range c.tools {
		tools = append(tools, tool)
	}
	cat, err := catalog.NewMemory(tools...)
	if err != nil {
		return err
	}

	calc := rental.NewCalculator(cat, calendar.NewUSCalendar(calendar.ObserveActualDate), dateutil.DefaultCenturyPivot, zap.NewNop())
	c.agreement, c.err = calc.Checkout(code, days, discount, date)
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsWithInvalidArgument(msg string) error {
	if c.agreement != nil {
		return errors.New("expected no agreement")
	}
	if !errors.Is(c.err, rental.ErrInvalidArgument) {
		return fmt.Errorf("expected invalid argument error, got %v", c.err)
	}
	if c.err.Error() != msg {
		return fmt.Errorf("expected message %q, got %q", msg, c.err.Error())
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutFailsWithADateParseError() error {
	if c.agreement != nil {
		return errors.New("expected no agreement")
	}
	var dateErr *rental.DateParseError
	if !errors.As(c.err, &dateErr) {
		return fmt.Errorf("expected date parse error, got %v", c.err)
	}
	return nil
}

func (c *checkoutTestContext) requireAgreement() error {
	if c.err != nil {
		return fmt.Errorf("expected agreement but got error: %v", c.err)
	}
	if c.agreement == nil {
		return errors.New("expected agreement")
	}
	return nil
}

func (c *checkoutTestContext) theAgreementIsForAMadeBy(toolType, brand string) error {
	if err := c.requireAgreement(); err != nil {
		return err
	}
	if c.agreement.ToolType != toolType || c.agreement.ToolBrand != brand {
		return fmt.Errorf("expected %s by %s, got %s by %s", toolType, brand, c.agreement.ToolType, c.agreement.ToolBrand)
	}
	return nil
}

func (c *checkoutTestContext) theDueDateIs(date string) error {
	if err := c.requireAgreement(); err != nil {
		return err
	}
	if got := dateutil.FormatShortDate(c.agreement.DueDate); got != date {
		return fmt.Errorf("expected due date %s, got %s", date, got)
	}
	return nil
}

func (c *checkoutTestContext) theChargeDaysAre(days int) error {
	if err := c.requireAgreement(); err != nil {
		return err
	}
	if c.agreement.ChargeDays != days {
		return fmt.Errorf("expected %d charge days, got %d", days, c.agreement.ChargeDays)
	}
	return nil
}

func (c *checkoutTestContext) amountIs(name string, get func(*rental.Agreement) decimal.Decimal) func(string) error {
	return func(want string) error {
		if err := c.requireAgreement(); err != nil {
			return err
		}
		if got := get(c.agreement).StringFixed(2); got != want {
			return fmt.Errorf("expected %s %s, got %s", name, want, got)
		}
		return nil
	}
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the built-in tool inventory$`, tc.theBuiltInToolInventory)
	ctx.Step(`^a tool "([^"]*)" of type "([^"]*)" by "([^"]*)" charging "([^"]*)" per day$`, tc.aToolOfTypeByChargingPerDay)

	// When steps
	ctx.Step(`^I check out "([^"]*)" for (-?\d+) days with (-?\d+)% discount on "([^"]*)"$`, tc.iCheckOutForDaysWithDiscountOn)

	// Then steps
	ctx.Step(`^the checkout fails with invalid argument "([^"]*)"$`, tc.theCheckoutFailsWithInvalidArgument)
	ctx.Step(`^the checkout fails with a date parse error$`, tc.theCheckoutFailsWithADateParseError)
	ctx.Step(`^the agreement is for a "([^"]*)" made by "([^"]*)"$`, tc.theAgreementIsForAMadeBy)
	ctx.Step(`^the due date is "([^"]*)"$`, tc.theDueDateIs)
	ctx.Step(`^the charge days are (\d+)$`, tc.theChargeDaysAre)
	ctx.Step(`^the pre-discount charge is "([^"]*)"$`, tc.amountIs("pre-discount charge", func(a *rental.Agreement) decimal.Decimal { return a.PreDiscountCharge }))
	ctx.Step(`^the discount amount is "([^"]*)"$`, tc.amountIs("discount amount", func(a *rental.Agreement) decimal.Decimal { return a.DiscountAmount }))
	ctx.Step(`^the final charge is "([^"]*)"$`, tc.amountIs("final charge", func(a *rental.Agreement) decimal.Decimal { return a.FinalCharge }))
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/checkout.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
