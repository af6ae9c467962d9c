package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/repository"
	"github.com/templedesk/temple-booking/internal/timerange"
	"github.com/templedesk/temple-booking/monitoring"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^\d{10,15}$`)

const maxNameLength = 200

// validName bounds a person or hall name. The limit counts characters,
// not bytes, so multibyte scripts get the full length.
func validName(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= maxNameLength
}

// EventPublisher publishes booking lifecycle events. A nil publisher
// disables publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// BookingEvent is the message published on create and status change.
type BookingEvent struct {
	EventID    string               `json:"event_id"`
	BookingID  uint                 `json:"booking_id"`
	HallID     uint                 `json:"hall_id"`
	Status     models.BookingStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// CreateBookingInput carries a validated-to-be request. Times stay in their
// "HH:MM" string form until the validator parses them.
type CreateBookingInput struct {
	HallID           uint
	CustomerName     string
	CustomerPhone    string
	EventPurpose     string
	BookingStartDate time.Time
	BookingEndDate   time.Time
	StartTime        string
	EndTime          string
}

type BookingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookings(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, bookingID uint, status models.BookingStatus) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID uint) error
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	hallRepo    repository.HallRepository
	publisher   EventPublisher
	clock       Clock
}

func NewBookingService(bookingRepo repository.BookingRepository, hallRepo repository.HallRepository, publisher EventPublisher, clock Clock) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		hallRepo:    hallRepo,
		publisher:   publisher,
		clock:       clock,
	}
}

// validateInput runs the field checks that need no hall data, in a fixed
// order with the first failure winning.
func (s *bookingService) validateInput(input CreateBookingInput) (timerange.DateRange, timerange.TimeRange, error) {
	if !validName(input.CustomerName) {
		return timerange.DateRange{}, timerange.TimeRange{}, invalidField("customer_name", "must be non-empty and at most %d characters", maxNameLength)
	}
	if !phonePattern.MatchString(input.CustomerPhone) {
		return timerange.DateRange{}, timerange.TimeRange{}, invalidField("customer_phone", "must be 10 to 15 digits")
	}

	dates, err := timerange.NewDateRange(input.BookingStartDate, input.BookingEndDate)
	if err != nil {
		return timerange.DateRange{}, timerange.TimeRange{}, invalidField("booking_end_date", "must be on or after booking_start_date")
	}

	today := timerange.Truncate(s.clock.Now())
	if dates.Start.Before(today) {
		return timerange.DateRange{}, timerange.TimeRange{}, invalidField("booking_start_date", "cannot create booking for past dates")
	}

	window, err := timerange.ParseTimeRange(input.StartTime, input.EndTime)
	if err != nil {
		return timerange.DateRange{}, timerange.TimeRange{}, invalidField("end_time", "%v", err)
	}

	return dates, window, nil
}

// checkAvailableHours enforces the hall's daily availability window when
// one is configured.
func checkAvailableHours(hall *models.Hall, window timerange.TimeRange) error {
	if hall.AvailableFrom == "" || hall.AvailableTo == "" {
		return nil
	}
	from, err := timerange.ParseTime(hall.AvailableFrom)
	if err != nil {
		return nil // malformed hall data must not block bookings
	}
	to, err := timerange.ParseTime(hall.AvailableTo)
	if err != nil {
		return nil
	}
	if !window.Within(timerange.TimeRange{Start: from, End: to}) {
		return invalidField("start_time", "booking time must fall within hall hours %s-%s", hall.AvailableFrom, hall.AvailableTo)
	}
	return nil
}

// findConflict scans blocking bookings for one whose date span and daily
// time window both intersect the candidate's. Date spans are inclusive,
// daily windows half-open, so back-to-back bookings never collide.
func findConflict(dates timerange.DateRange, window timerange.TimeRange, existing []models.Booking) *models.Booking {
	for i := range existing {
		b := &existing[i]
		if !b.Status.Blocks() {
			continue
		}
		theirDates := timerange.DateRange{
			Start: timerange.Truncate(b.BookingStartDate),
			End:   timerange.Truncate(b.BookingEndDate),
		}
		if !dates.Overlaps(theirDates) {
			continue
		}
		theirWindow, err := timerange.ParseTimeRange(b.StartTime, b.EndTime)
		if err != nil {
			log.Printf("[BookingService] skipping booking %d with malformed time range: %v", b.ID, err)
			continue
		}
		if window.Overlaps(theirWindow) {
			return b
		}
	}
	return nil
}

func (s *bookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	dates, window, err := s.validateInput(input)
	if err != nil {
		monitoring.RecordBookingOperation("create", "validation_error")
		return nil, err
	}

	var result *models.Booking
	err = s.bookingRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		// Lock the hall row so concurrent creates for the same hall
		// serialize; two requests cannot both see "no conflict".
		hall, err := s.hallRepo.FindByIDForUpdate(ctx, tx, input.HallID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrHallNotFound
			}
			return err
		}

		if err := checkAvailableHours(hall, window); err != nil {
			return err
		}

		blocking, err := s.bookingRepo.FindBlocking(ctx, tx, input.HallID, dates.Start, dates.End)
		if err != nil {
			return err
		}
		if hit := findConflict(dates, window, blocking); hit != nil {
			return &ConflictError{BookingID: hit.ID}
		}

		booking := &models.Booking{
			HallID:           input.HallID,
			CustomerName:     input.CustomerName,
			CustomerPhone:    input.CustomerPhone,
			EventPurpose:     input.EventPurpose,
			BookingStartDate: dates.Start,
			BookingEndDate:   dates.End,
			StartTime:        input.StartTime,
			EndTime:          input.EndTime,
			Status:           models.StatusPending,
			TotalPrice:       CalculateTotalPrice(hall, dates, window),
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		booking.Hall = hall
		result = booking
		return nil
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			monitoring.RecordBookingOperation("create", "conflict")
		}
		return nil, err
	}

	monitoring.RecordBookingOperation("create", "ok")
	s.publish("booking.created", result)
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx, filter)
}

func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID uint, status models.BookingStatus) (*models.Booking, error) {
	if !status.IsValid() {
		return nil, invalidField("status", "unknown status %q", string(status))
	}

	var result *models.Booking
	err := s.bookingRepo.WithTransaction(ctx, func(tx *gorm.DB) error {
		// Lock the row so the transition guard checks the committed
		// status; a plain read could race a concurrent cancel.
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if !booking.Status.CanTransitionTo(status) {
			return &IllegalTransitionError{From: string(booking.Status), To: string(status)}
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, bookingID, status); err != nil {
			return err
		}
		booking.Status = status
		result = booking
		return nil
	})
	if err != nil {
		monitoring.RecordBookingOperation("update_status", "error")
		return nil, err
	}

	monitoring.RecordBookingOperation("update_status", "ok")
	s.publish("booking.status_changed", result)
	return result, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID uint) error {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if !booking.Status.CanDelete() {
		return ErrIllegalDeletion
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		return err
	}
	monitoring.RecordBookingOperation("delete", "ok")
	return nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	event := BookingEvent{
		EventID:    uuid.NewString(),
		BookingID:  booking.ID,
		HallID:     booking.HallID,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		log.Printf("[BookingService] publish %s for booking %d: %v", routingKey, booking.ID, err)
	}
}
