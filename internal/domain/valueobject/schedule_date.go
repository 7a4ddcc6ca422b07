package valueobject

import "time"

// DateLayout is the calendar-date format used across the API and audit trail.
const DateLayout = "2006-01-02"

// AddMonths steps a date forward by n calendar months, keeping the day of month
// where possible and clamping to the last day of shorter months
// (Jan 31 + 1 month = Feb 28, or Feb 29 in leap years).
func AddMonths(date time.Time, n int) time.Time {
	year, month, day := date.Date()
	hour, minute, sec := date.Clock()
	loc := date.Location()

	target := time.Date(year, month+time.Month(n), 1, hour, minute, sec, date.Nanosecond(), loc)
	lastDay := DaysInMonth(target.Year(), target.Month())
	if day > lastDay {
		day = lastDay
	}

	return time.Date(target.Year(), target.Month(), day, hour, minute, sec, date.Nanosecond(), loc)
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfDay truncates a time to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}
