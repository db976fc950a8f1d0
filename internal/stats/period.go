package stats

import (
	"fmt"
	"time"
)

// Period is a calendar reporting period.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod maps a query value to a Period. The empty string means week.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	}
	return "", fmt.Errorf("period must be %q or %q", PeriodWeek, PeriodMonth)
}

// Window returns the calendar period containing now, in now's location.
// A week runs Monday 00:00 through Sunday 23:59:59.999999999 and a month
// from the 1st through the end of its last day. Both bounds are inclusive.
func Window(p Period, now time.Time) (start, end time.Time) {
	loc := now.Location()
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch p {
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	default:
		// time.Weekday counts from Sunday; shift so Monday is 0.
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	}
	return start, end
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
