package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ShortDateLayout is the MM/DD/YY layout used on rental agreements
const ShortDateLayout = "01/02/06"

// DefaultCenturyPivot maps two-digit years 00-69 to 2000-2069 and 70-99 to 1970-1999
const DefaultCenturyPivot = 70

// CivilDate returns midnight UTC of the calendar date shown by t in its own location.
// All day arithmetic is done on civil dates so DST shifts never move a day.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the civil date n calendar days after date
func AddDays(date time.Time, n int) time.Time {
	return CivilDate(date).AddDate(0, 0, n)
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatShortDate formats date as MM/DD/YY
func FormatShortDate(date time.Time) string {
	return date.Format(ShortDateLayout)
}

// ParseShortDate parses a MM/DD/YY date into a civil date (midnight UTC).
//
// Month and day may have one or two digits. The year may have two digits,
// resolved against pivot (YY < pivot is 20YY, otherwise 19YY), or four
// digits, taken literally.
func ParseShortDate(value string, pivot int) (time.Time, error) {
	if pivot < 0 || pivot > 100 {
		return time.Time{}, fmt.Errorf("century pivot must be between 0 and 100, got %d", pivot)
	}

	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: expected MM/DD/YY", value)
	}

	month, err := parseDigits(parts[0], 1, 2)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in %q: %w", value, err)
	}
	day, err := parseDigits(parts[1], 1, 2)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in %q: %w", value, err)
	}

	var year int
	switch len(parts[2]) {
	case 2:
		yy, err := parseDigits(parts[2], 2, 2)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid year in %q: %w", value, err)
		}
		year = ResolveTwoDigitYear(yy, pivot)
	case 4:
		year, err = parseDigits(parts[2], 4, 4)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid year in %q: %w", value, err)
		}
	default:
		return time.Time{}, fmt.Errorf("invalid year in %q: expected 2 or 4 digits", value)
	}

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid date %q: month must be between 1 and 12", value)
	}
	if maxDay := DaysIn(year, time.Month(month)); day < 1 || day > maxDay {
		return time.Time{}, fmt.Errorf("invalid date %q: day must be between 1 and %d", value, maxDay)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// ResolveTwoDigitYear expands a two-digit year using the century pivot
func ResolveTwoDigitYear(yy, pivot int) int {
	if yy < pivot {
		return 2000 + yy
	}
	return 1900 + yy
}

func parseDigits(s string, minLen, maxLen int) (int, error) {
	if len(s) < minLen || len(s) > maxLen {
		return 0, fmt.Errorf("%q has %d digits, want %d-%d", s, len(s), minLen, maxLen)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a number", s)
		}
	}
	return strconv.Atoi(s)
}
