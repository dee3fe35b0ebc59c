package calendar

import (
	"time"

	"github.com/username/tool-rental/pkg/dateutil"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWeekday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

// String returns the lowercase name of the day type
func (t DayType) String() string {
	switch t {
	case DayTypeWeekday:
		return "weekday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         time.Time
	Type         DayType
	IsChargeable bool
	Note         string
}

// PeriodInfo represents calendar information for a rental period [Start, End)
type PeriodInfo struct {
	Start      time.Time
	End        time.Time
	ChargeDays int
	Weekends   int
	Holidays   int
	Days       []DayInfo
}

// Calendar interface for classifying rental days
type Calendar interface {
	// IsChargeable checks if rental fees accrue on the given date
	IsChargeable(date time.Time) bool

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) DayInfo
}

// CountChargeableDays counts chargeable days among the days consecutive
// civil dates starting at (and including) start.
func CountChargeableDays(cal Calendar, start time.Time, days int) int {
	count := 0
	day := dateutil.CivilDate(start)
	for i := 0; i < days; i++ {
		if cal.IsChargeable(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}

// GetPeriodInfo classifies every day in [start, start+days)
func GetPeriodInfo(cal Calendar, start time.Time, days int) *PeriodInfo {
	if days < 0 {
		days = 0
	}

	first := dateutil.CivilDate(start)
	period := &PeriodInfo{
		Start: first,
		End:   first.AddDate(0, 0, days),
		Days:  make([]DayInfo, 0, days),
	}

	for i := 0; i < days; i++ {
		info := cal.GetDayInfo(first.AddDate(0, 0, i))
		period.Days = append(period.Days, info)

		switch {
		case info.IsChargeable:
			period.ChargeDays++
		case info.Type == DayTypeHoliday:
			period.Holidays++
		case info.Type == DayTypeWeekend:
			period.Weekends++
		}
	}

	return period
}
