package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateInputLayout is the value format of an HTML date input.
	DateInputLayout = "2006-01-02"
	// DateTimeInputLayout is the value format of an HTML datetime-local input.
	DateTimeInputLayout = "2006-01-02T15:04"
)

// RangeUnit is one of the quick-select spans of the period filter.
type RangeUnit string

const (
	RangeWeek  RangeUnit = "week"
	RangeMonth RangeUnit = "month"
	RangeYear  RangeUnit = "year"
)

// Period is an inclusive time range.
type Period struct {
	Start time.Time
	End   time.Time
}

// Label is the human form of the period, used when the server sends none.
func (p Period) Label() string {
	return fmt.Sprintf("%s - %s", p.Start.Format("02/01/2006"), p.End.Format("02/01/2006"))
}

// ParseDateInput parses a YYYY-MM-DD value in loc.
func ParseDateInput(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateInputLayout, strings.TrimSpace(s), loc)
}

// ParseDateTimeInput parses a datetime-local value in loc. A bare date is
// accepted and taken at midnight.
func ParseDateTimeInput(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateTimeInputLayout, "2006-01-02T15:04:05", DateInputLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// DayBounds widens two calendar days to [start 00:00:00, end 23:59:59] in
// the days' own location.
func DayBounds(start, end time.Time) Period {
	y, m, d := start.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	y, m, d = end.Date()
	to := time.Date(y, m, d, 23, 59, 59, 0, end.Location())
	return Period{Start: from, End: to}
}

// QuickRange returns the inputs for "the last unit up to now" as date strings.
func QuickRange(unit RangeUnit, now time.Time) (start, end string, err error) {
	var from time.Time
	switch unit {
	case RangeWeek:
		from = now.AddDate(0, 0, -7)
	case RangeMonth:
		from = now.AddDate(0, -1, 0)
	case RangeYear:
		from = now.AddDate(-1, 0, 0)
	default:
		return "", "", fmt.Errorf("unknown range unit %q", unit)
	}
	return from.Format(DateInputLayout), now.Format(DateInputLayout), nil
}
