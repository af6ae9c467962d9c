package timerange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTime_Valid(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:00": 540,
		"17:30": 1050,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := ParseTime(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseTime_Invalid(t *testing.T) {
	for _, in := range []string{"24:00", "12:60", "9:00", "12-30", "12:3", "", "ab:cd", "12:300"} {
		_, err := ParseTime(in)
		assert.Error(t, err, in)
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "09:05", "22:00", "23:59"} {
		min, err := ParseTime(s)
		assert.NoError(t, err)
		assert.Equal(t, s, FormatTime(min))
	}
}

func TestParseTimeRange_RejectsInverted(t *testing.T) {
	_, err := ParseTimeRange("14:00", "10:00")
	assert.Error(t, err)

	_, err = ParseTimeRange("14:00", "14:00")
	assert.Error(t, err)
}

func TestTimeRange_Overlaps(t *testing.T) {
	a := TimeRange{Start: 600, End: 840} // 10:00-14:00

	assert.True(t, a.Overlaps(TimeRange{Start: 780, End: 960}))  // 13:00-16:00
	assert.True(t, a.Overlaps(TimeRange{Start: 540, End: 1320})) // enclosing
	assert.False(t, a.Overlaps(TimeRange{Start: 840, End: 960})) // back-to-back at 14:00
	assert.False(t, a.Overlaps(TimeRange{Start: 480, End: 600})) // ends at 10:00
}

func TestTimeRange_Within(t *testing.T) {
	hours := TimeRange{Start: 540, End: 1320} // 09:00-22:00

	assert.True(t, TimeRange{Start: 600, End: 840}.Within(hours))
	assert.False(t, TimeRange{Start: 1380, End: 1410}.Within(hours)) // 23:00-23:30
	assert.False(t, TimeRange{Start: 480, End: 600}.Within(hours))
	assert.True(t, hours.Within(hours))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange(t *testing.T) {
	r, err := NewDateRange(date(2025, 12, 20), date(2025, 12, 22))
	assert.NoError(t, err)
	assert.Equal(t, 3, r.Days())

	_, err = NewDateRange(date(2025, 12, 22), date(2025, 12, 20))
	assert.Error(t, err)

	// Single-day range is valid.
	r, err = NewDateRange(date(2025, 12, 20), date(2025, 12, 20))
	assert.NoError(t, err)
	assert.Equal(t, 1, r.Days())
}

func TestDateRange_Overlaps(t *testing.T) {
	a := DateRange{Start: date(2025, 12, 20), End: date(2025, 12, 22)}

	// Inclusive bounds: sharing a single day counts.
	assert.True(t, a.Overlaps(DateRange{Start: date(2025, 12, 22), End: date(2025, 12, 25)}))
	assert.True(t, a.Overlaps(DateRange{Start: date(2025, 12, 19), End: date(2025, 12, 20)}))
	assert.False(t, a.Overlaps(DateRange{Start: date(2025, 12, 23), End: date(2025, 12, 25)}))
}

func TestTruncate_StripsTimeComponent(t *testing.T) {
	in := time.Date(2025, 12, 20, 18, 45, 12, 999, time.FixedZone("IST", 5*3600+1800))
	got := Truncate(in)
	assert.Equal(t, date(2025, 12, 20), got)
	assert.Equal(t, time.UTC, got.Location())
}
