package ledger

import (
	"fmt"
	"time"
)

// Granularity is the bucket size of a cash-flow projection.
type Granularity string

const (
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
)

// IsValid reports whether the granularity is supported.
func (g Granularity) IsValid() bool {
	return g == GranularityWeekly || g == GranularityMonthly || g == GranularityQuarterly
}

// monthAbbreviations maps months to Portuguese abbreviations.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Fev",
	time.March:     "Mar",
	time.April:     "Abr",
	time.May:       "Mai",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Ago",
	time.September: "Set",
	time.October:   "Out",
	time.November:  "Nov",
	time.December:  "Dez",
}

// PeriodLabel generates a human-readable label for a period.
// Formats:
// - Weekly: "S{week} {year}" (e.g., "S12 2025")
// - Monthly: "{month_abbr} {year}" (e.g., "Mar 2025")
// - Quarterly: "T{quarter} {year}" (e.g., "T1 2025")
func PeriodLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityWeekly:
		_, week := date.ISOWeek()
		return fmt.Sprintf("S%d %d", week, date.Year())
	case GranularityMonthly:
		return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()], date.Year())
	case GranularityQuarterly:
		quarter := (int(date.Month())-1)/3 + 1
		return fmt.Sprintf("T%d %d", quarter, date.Year())
	default:
		return date.Format("02/01/2006")
	}
}

// periodStart returns the first day of the period containing date.
func periodStart(date time.Time, granularity Granularity) time.Time {
	loc := date.Location()

	switch granularity {
	case GranularityWeekly:
		// Weeks start on Monday
		weekday := int(date.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return time.Date(date.Year(), date.Month(), date.Day()-(weekday-1), 0, 0, 0, 0, loc)
	case GranularityQuarterly:
		quarter := (int(date.Month()) - 1) / 3
		return time.Date(date.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, loc)
	}
}

// nextPeriod returns the start of the period after the one starting at start.
func nextPeriod(start time.Time, granularity Granularity) time.Time {
	switch granularity {
	case GranularityWeekly:
		return start.AddDate(0, 0, 7)
	case GranularityQuarterly:
		return start.AddDate(0, 3, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// PeriodInfo holds information about a single period.
type PeriodInfo struct {
	PeriodStart time.Time
	PeriodEnd   time.Time // Last day of the period, inclusive
	PeriodLabel string
}

// PeriodSeries generates every period between startDate and endDate with no gaps.
func PeriodSeries(startDate, endDate time.Time, granularity Granularity) []PeriodInfo {
	var periods []PeriodInfo

	for current := periodStart(startDate, granularity); !current.After(endDate); current = nextPeriod(current, granularity) {
		periods = append(periods, PeriodInfo{
			PeriodStart: current,
			PeriodEnd:   nextPeriod(current, granularity).AddDate(0, 0, -1),
			PeriodLabel: PeriodLabel(current, granularity),
		})
	}

	return periods
}

// periodKey returns a unique key for the period containing date.
func periodKey(date time.Time, granularity Granularity) string {
	return periodStart(date, granularity).Format("2006-01-02")
}
