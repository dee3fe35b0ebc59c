package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/tool-rental/pkg/dateutil"
)

// Observance selects how a holiday falling on a weekend is recognized
type Observance int

const (
	// ObserveActualDate keeps the holiday on its calendar date. A weekend
	// holiday is just a weekend day; no adjacent weekday is affected.
	ObserveActualDate Observance = iota
	// ObserveNearestWeekday moves a Saturday holiday to the preceding Friday
	// and a Sunday holiday to the following Monday.
	ObserveNearestWeekday
)

const (
	independenceDay         = "Independence Day"
	independenceDayObserved = "Independence Day (observed)"
	laborDay                = "Labor Day"
)

// String returns the config name of the observance policy
func (o Observance) String() string {
	switch o {
	case ObserveNearestWeekday:
		return "nearest-weekday"
	default:
		return "actual"
	}
}

// ParseObservance parses an observance policy name. Empty means actual.
func ParseObservance(name string) (Observance, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "actual":
		return ObserveActualDate, nil
	case "nearest-weekday":
		return ObserveNearestWeekday, nil
	default:
		return ObserveActualDate, fmt.Errorf("unknown holiday observance %q, want 'actual' or 'nearest-weekday'", name)
	}
}

// USCalendar implements Calendar with Monday-Friday rental days and two
// fixed US holidays: Independence Day (July 4th) and Labor Day (first
// Monday in September).
type USCalendar struct {
	observance Observance
}

// NewUSCalendar creates a new USCalendar instance
func NewUSCalendar(observance Observance) *USCalendar {
	return &USCalendar{observance: observance}
}

// Observance returns the configured observance policy
func (c *USCalendar) Observance() Observance {
	return c.observance
}

// IsChargeable checks if the given date is a weekday and not a holiday
func (c *USCalendar) IsChargeable(date time.Time) bool {
	date = dateutil.CivilDate(date)
	if !dateutil.IsWeekday(date) {
		return false
	}
	_, holiday := c.Holiday(date)
	return !holiday
}

// GetDayInfo returns detailed info for a specific day
func (c *USCalendar) GetDayInfo(date time.Time) DayInfo {
	date = dateutil.CivilDate(date)
	info := DayInfo{
		Date: date,
		Type: DayTypeWeekday,
	}

	if name, ok := c.Holiday(date); ok {
		info.Type = DayTypeHoliday
		info.Note = name
	} else if dateutil.IsWeekend(date) {
		info.Type = DayTypeWeekend
	}
	info.IsChargeable = info.Type == DayTypeWeekday

	return info
}

// Holiday reports whether date is a holiday and returns its name
func (c *USCalendar) Holiday(date time.Time) (string, bool) {
	date = dateutil.CivilDate(date)

	switch date.Month() {
	case time.July:
		return c.independenceDay(date)
	case time.September:
		if date.Weekday() == time.Monday && date.Day() <= 7 {
			return laborDay, true
		}
	}

	return "", false
}

func (c *USCalendar) independenceDay(date time.Time) (string, bool) {
	fourth := time.Date(date.Year(), time.July, 4, 0, 0, 0, 0, time.UTC)

	if c.observance == ObserveActualDate {
		if date.Day() == 4 {
			return independenceDay, true
		}
		return "", false
	}

	observed := fourth
	switch fourth.Weekday() {
	case time.Saturday:
		observed = fourth.AddDate(0, 0, -1)
	case time.Sunday:
		observed = fourth.AddDate(0, 0, 1)
	}

	if !dateutil.IsSameDay(date, observed) {
		return "", false
	}
	if observed.Day() == 4 {
		return independenceDay, true
	}
	return independenceDayObserved, true
}
