package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/timerange"
)

func mustRanges(t *testing.T, startDate, endDate time.Time, from, to string) (timerange.DateRange, timerange.TimeRange) {
	t.Helper()
	dates, err := timerange.NewDateRange(startDate, endDate)
	require.NoError(t, err)
	window, err := timerange.ParseTimeRange(from, to)
	require.NoError(t, err)
	return dates, window
}

func TestCalculateTotalPrice(t *testing.T) {
	day := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		basePrice    float64
		pricePerHour float64
		days         int
		from, to     string
		want         float64
	}{
		{"single day four hours", 1000, 200, 1, "10:00", "14:00", 1800},
		{"three day span", 1000, 200, 3, "10:00", "14:00", 3400},
		{"half hour granularity", 500, 150, 1, "09:00", "10:30", 725},
		{"fractional rate rounds half-up", 0, 33.335, 1, "10:00", "11:00", 33.34},
		{"free hall", 0, 0, 2, "08:00", "20:00", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hall := &models.Hall{BasePrice: tc.basePrice, PricePerHour: tc.pricePerHour}
			dates, window := mustRanges(t, day, day.AddDate(0, 0, tc.days-1), tc.from, tc.to)

			assert.Equal(t, tc.want, CalculateTotalPrice(hall, dates, window))
		})
	}
}

func TestSumAmounts(t *testing.T) {
	amount := func(v float64) *float64 { return &v }

	bookings := []models.SevaBooking{
		{Seva: &models.Seva{Amount: amount(101.5)}},
		{Seva: &models.Seva{Amount: amount(51.25)}},
		{Seva: &models.Seva{Amount: nil}}, // donation-amount sevas count as zero
		{Seva: nil},
	}

	assert.Equal(t, 152.75, sumAmounts(bookings))
}
