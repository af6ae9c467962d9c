package service

import (
	"github.com/shopspring/decimal"
	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/timerange"
)

// CalculateTotalPrice prices a hall booking: base price plus the hourly rate
// over the daily time window, charged for every calendar day in the span.
// Result is rounded half-up to currency precision.
func CalculateTotalPrice(hall *models.Hall, dates timerange.DateRange, window timerange.TimeRange) float64 {
	hoursPerDay := decimal.NewFromInt(int64(window.Minutes())).Div(decimal.NewFromInt(60))
	days := decimal.NewFromInt(int64(dates.Days()))

	total := decimal.NewFromFloat(hall.BasePrice).
		Add(decimal.NewFromFloat(hall.PricePerHour).Mul(hoursPerDay).Mul(days))

	f, _ := total.Round(2).Float64()
	return f
}

// sumAmounts totals nullable seva amounts without float accumulation drift.
func sumAmounts(bookings []models.SevaBooking) float64 {
	total := decimal.Zero
	for _, b := range bookings {
		if b.Seva != nil && b.Seva.Amount != nil {
			total = total.Add(decimal.NewFromFloat(*b.Seva.Amount))
		}
	}
	f, _ := total.Round(2).Float64()
	return f
}
