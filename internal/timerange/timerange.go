// Package timerange holds the value types the booking engine compares:
// times of day as minutes since midnight and calendar dates without a
// time component. Both halls and bookings store times as "HH:MM" strings,
// so parsing is strict and formatting must round-trip exactly.
package timerange

import (
	"fmt"
	"time"
)

// ParseTime parses a strict "HH:MM" string into minutes since midnight.
func ParseTime(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time format: %q, expected HH:MM", s)
	}
	h, err := twoDigits(s[0], s[1])
	if err != nil || h > 23 {
		return 0, fmt.Errorf("invalid time format: %q, expected HH:MM", s)
	}
	m, err := twoDigits(s[3], s[4])
	if err != nil || m > 59 {
		return 0, fmt.Errorf("invalid time format: %q, expected HH:MM", s)
	}
	return h*60 + m, nil
}

func twoDigits(a, b byte) (int, error) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, fmt.Errorf("not a digit")
	}
	return int(a-'0')*10 + int(b-'0'), nil
}

// FormatTime is the inverse of ParseTime.
func FormatTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// TimeRange is a half-open [Start, End) window within a single day,
// in minutes since midnight. A booking ending at 17:00 does not
// occupy the 17:00 minute.
type TimeRange struct {
	Start int
	End   int
}

// ParseTimeRange parses start/end strings and checks end > start.
func ParseTimeRange(start, end string) (TimeRange, error) {
	s, err := ParseTime(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := ParseTime(end)
	if err != nil {
		return TimeRange{}, err
	}
	if e <= s {
		return TimeRange{}, fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return TimeRange{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open windows intersect.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start < o.End && o.Start < r.End
}

// Minutes returns the window length.
func (r TimeRange) Minutes() int {
	return r.End - r.Start
}

// Within reports whether r falls entirely inside o.
func (r TimeRange) Within(o TimeRange) bool {
	return r.Start >= o.Start && r.End <= o.End
}

// DateRange is an inclusive [Start, End] span of calendar dates.
// Both bounds are midnight-UTC; Truncate strips any time component.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both dates to midnight UTC and checks end >= start.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := Truncate(start), Truncate(end)
	if e.Before(s) {
		return DateRange{}, fmt.Errorf("end date %s must be on or after start date %s",
			e.Format("2006-01-02"), s.Format("2006-01-02"))
	}
	return DateRange{Start: s, End: e}, nil
}

// Truncate drops the time-of-day component, keeping the calendar date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two inclusive date spans share at least one day.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !o.Start.After(r.End)
}

// Days returns the inclusive number of calendar days in the span.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}
