package service

import (
	"context"
	"time"

	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/repository"
	"github.com/templedesk/temple-booking/internal/timerange"
)

// maxCalendarRangeDays caps the week view so a single request cannot pull
// an unbounded window.
const maxCalendarRangeDays = 31

// CalendarWindow is the read-side view over bookings whose date span
// touches the requested window.
type CalendarWindow struct {
	Start    time.Time
	End      time.Time
	Bookings []models.Booking
}

type CalendarService interface {
	DayView(ctx context.Context, date time.Time, hallID uint, includeCancelled bool) (*CalendarWindow, error)
	WeekView(ctx context.Context, start, end time.Time, hallID uint, includeCancelled bool) (*CalendarWindow, error)
	MonthView(ctx context.Context, year, month int, hallID uint, includeCancelled bool) (*CalendarWindow, error)
}

type calendarService struct {
	bookingRepo repository.BookingRepository
}

func NewCalendarService(bookingRepo repository.BookingRepository) CalendarService {
	return &calendarService{bookingRepo: bookingRepo}
}

func (s *calendarService) window(ctx context.Context, start, end time.Time, hallID uint, includeCancelled bool) (*CalendarWindow, error) {
	bookings, err := s.bookingRepo.FindOverlappingWindow(ctx, start, end, hallID, includeCancelled)
	if err != nil {
		return nil, err
	}
	return &CalendarWindow{Start: start, End: end, Bookings: bookings}, nil
}

func (s *calendarService) DayView(ctx context.Context, date time.Time, hallID uint, includeCancelled bool) (*CalendarWindow, error) {
	day := timerange.Truncate(date)
	return s.window(ctx, day, day, hallID, includeCancelled)
}

func (s *calendarService) WeekView(ctx context.Context, start, end time.Time, hallID uint, includeCancelled bool) (*CalendarWindow, error) {
	dates, err := timerange.NewDateRange(start, end)
	if err != nil {
		return nil, invalidField("end_date", "must be on or after start_date")
	}
	if dates.Days() > maxCalendarRangeDays {
		return nil, invalidField("end_date", "date range cannot exceed %d days", maxCalendarRangeDays)
	}
	return s.window(ctx, dates.Start, dates.End, hallID, includeCancelled)
}

func (s *calendarService) MonthView(ctx context.Context, year, month int, hallID uint, includeCancelled bool) (*CalendarWindow, error) {
	if year < 2000 || year > 2100 {
		return nil, invalidField("year", "must be between 2000 and 2100")
	}
	if month < 1 || month > 12 {
		return nil, invalidField("month", "must be between 1 and 12")
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.window(ctx, first, last, hallID, includeCancelled)
}
