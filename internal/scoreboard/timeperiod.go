// internal/scoreboard/timeperiod.go
//
// Time periods a game can be scored over, and their date-range math.
// "past_*" periods are rolling windows ending at the reference date;
// "last_*" periods are calendar-aligned (last full week/month/year).

package scoreboard

import (
	"fmt"
	"time"
)

// TimePeriod names a headline window.
type TimePeriod string

const (
	PastDay   TimePeriod = "past_day"
	PastWeek  TimePeriod = "past_week"
	PastMonth TimePeriod = "past_month"
	PastYear  TimePeriod = "past_year"
	LastWeek  TimePeriod = "last_week"
	LastMonth TimePeriod = "last_month"
	LastYear  TimePeriod = "last_year"
)

var timePeriods = map[TimePeriod]bool{
	PastDay: true, PastWeek: true, PastMonth: true, PastYear: true,
	LastWeek: true, LastMonth: true, LastYear: true,
}

// ParseTimePeriod validates a wire value.
func ParseTimePeriod(s string) (TimePeriod, error) {
	p := TimePeriod(s)
	if !timePeriods[p] {
		return "", fmt.Errorf("unknown time period %q", s)
	}
	return p, nil
}

// Range resolves the period to a [start, end) window anchored at ref.
// Weeks start on Monday; calendar periods snap to the first day of the
// week/month/year preceding ref.
func (p TimePeriod) Range(ref time.Time) (start, end time.Time) {
	ref = ref.UTC()
	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	start, end = midnight, midnight

	switch p {
	case PastDay:
		start = midnight.AddDate(0, 0, -1)
	case PastWeek:
		start = midnight.AddDate(0, 0, -7)
	case PastMonth:
		start = midnight.AddDate(0, -1, 0)
	case PastYear:
		start = midnight.AddDate(-1, 0, 0)
	case LastWeek:
		// Monday-based offset into the current week.
		wd := int(midnight.Weekday()) - 1
		if wd == -1 {
			wd = 6
		}
		end = midnight.AddDate(0, 0, -wd)
		start = end.AddDate(0, 0, -7)
	case LastMonth:
		end = time.Date(midnight.Year(), midnight.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = end.AddDate(0, -1, 0)
	case LastYear:
		end = time.Date(midnight.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		start = end.AddDate(-1, 0, 0)
	}
	return start, end
}
