package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/repository"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn            func(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	findByIDFn          func(ctx context.Context, id uint) (*models.Booking, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	findAllFn      func(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
	findBlockingFn func(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error)
	findOverlappingFn func(ctx context.Context, dateFrom, dateTo time.Time, hallID uint, includeCancelled bool) ([]models.Booking, error)
	countActiveFn  func(ctx context.Context, hallID uint) (int64, error)
	updateStatusFn func(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	deleteFn       func(ctx context.Context, id uint) error
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, booking)
	}
	booking.ID = 1
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	if m.findByIDForUpdateFn != nil {
		return m.findByIDForUpdateFn(ctx, tx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *mockBookingRepo) FindAll(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindBlocking(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error) {
	if m.findBlockingFn != nil {
		return m.findBlockingFn(ctx, tx, hallID, dateFrom, dateTo)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindOverlappingWindow(ctx context.Context, dateFrom, dateTo time.Time, hallID uint, includeCancelled bool) ([]models.Booking, error) {
	if m.findOverlappingFn != nil {
		return m.findOverlappingFn(ctx, dateFrom, dateTo, hallID, includeCancelled)
	}
	return nil, nil
}

func (m *mockBookingRepo) CountActiveByHall(ctx context.Context, hallID uint) (int64, error) {
	if m.countActiveFn != nil {
		return m.countActiveFn(ctx, hallID)
	}
	return 0, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, bookingID, status)
	}
	return nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockBookingRepo) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock HallRepository ---

type mockHallRepo struct {
	createFn     func(ctx context.Context, hall *models.Hall) error
	findByIDFn   func(ctx context.Context, id uint) (*models.Hall, error)
	findByNameFn func(ctx context.Context, name string) (*models.Hall, error)
	findAllFn    func(ctx context.Context, skip, limit int) ([]models.Hall, error)
	saveFn       func(ctx context.Context, hall *models.Hall) error
	deleteFn     func(ctx context.Context, id uint) error
}

func (m *mockHallRepo) Create(ctx context.Context, hall *models.Hall) error {
	if m.createFn != nil {
		return m.createFn(ctx, hall)
	}
	hall.ID = 1
	return nil
}

func (m *mockHallRepo) FindByID(ctx context.Context, id uint) (*models.Hall, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHallRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Hall, error) {
	return m.FindByID(ctx, id)
}

func (m *mockHallRepo) FindByName(ctx context.Context, name string) (*models.Hall, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHallRepo) FindAll(ctx context.Context, skip, limit int) ([]models.Hall, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, skip, limit)
	}
	return nil, nil
}

func (m *mockHallRepo) Save(ctx context.Context, hall *models.Hall) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, hall)
	}
	return nil
}

func (m *mockHallRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	published []string
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.published = append(m.published, routingKey)
	return nil
}

// --- Fixtures ---

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testToday = time.Date(2024, 12, 20, 11, 30, 0, 0, time.UTC)

func sampleHall() *models.Hall {
	return &models.Hall{
		ID:            1,
		Name:          "Hall A",
		Capacity:      300,
		AvailableFrom: "09:00",
		AvailableTo:   "22:00",
		BasePrice:     1000,
		PricePerHour:  200,
	}
}

func sampleInput() CreateBookingInput {
	return CreateBookingInput{
		HallID:           1,
		CustomerName:     "Ramesh Kumar",
		CustomerPhone:    "9876543210",
		EventPurpose:     "Wedding reception",
		BookingStartDate: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		BookingEndDate:   time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		StartTime:        "10:00",
		EndTime:          "14:00",
	}
}

func newTestService(bookingRepo *mockBookingRepo, hallRepo *mockHallRepo, publisher EventPublisher) BookingService {
	if hallRepo.findByIDFn == nil {
		hall := sampleHall()
		hallRepo.findByIDFn = func(ctx context.Context, id uint) (*models.Hall, error) {
			if id == hall.ID {
				return hall, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
	}
	return NewBookingService(bookingRepo, hallRepo, publisher, fixedClock{now: testToday})
}

// --- CreateBooking ---

func TestCreateBooking_Success(t *testing.T) {
	pub := &mockPublisher{}
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, pub)

	booking, err := svc.CreateBooking(context.Background(), sampleInput())

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, 1800.0, booking.TotalPrice) // 1000 + 200 x 4h
	assert.Equal(t, "10:00", booking.StartTime)
	assert.Equal(t, "14:00", booking.EndTime)
	assert.Equal(t, []string{"booking.created"}, pub.published)
}

func TestCreateBooking_TimeStringsRoundTrip(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, nil)

	input := sampleInput()
	input.StartTime = "09:05"
	input.EndTime = "21:45"

	booking, err := svc.CreateBooking(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, "09:05", booking.StartTime)
	assert.Equal(t, "21:45", booking.EndTime)
}

func TestCreateBooking_ValidationOrder(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, nil)

	cases := []struct {
		name    string
		mutate  func(*CreateBookingInput)
		field   string
	}{
		{"empty name", func(in *CreateBookingInput) { in.CustomerName = "" }, "customer_name"},
		{"phone too short", func(in *CreateBookingInput) { in.CustomerPhone = "12345" }, "customer_phone"},
		{"phone non-digits", func(in *CreateBookingInput) { in.CustomerPhone = "98765abc43" }, "customer_phone"},
		{"end date before start", func(in *CreateBookingInput) {
			in.BookingEndDate = in.BookingStartDate.AddDate(0, 0, -1)
		}, "booking_end_date"},
		{"start date in past", func(in *CreateBookingInput) {
			in.BookingStartDate = testToday.AddDate(0, 0, -1)
			in.BookingEndDate = testToday.AddDate(0, 0, -1)
		}, "booking_start_date"},
		{"end time not after start", func(in *CreateBookingInput) {
			in.StartTime = "14:00"
			in.EndTime = "14:00"
		}, "end_time"},
		{"malformed time", func(in *CreateBookingInput) { in.StartTime = "25:00" }, "end_time"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := sampleInput()
			tc.mutate(&input)

			_, err := svc.CreateBooking(context.Background(), input)

			var validation *ValidationError
			assert.ErrorAs(t, err, &validation)
			assert.Equal(t, tc.field, validation.Field)
		})
	}
}

func TestCreateBooking_NameLengthCountsRunes(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, nil)

	// 200 Devanagari characters are 600 bytes but still within the limit.
	input := sampleInput()
	input.CustomerName = strings.Repeat("श", 200)
	_, err := svc.CreateBooking(context.Background(), input)
	assert.NoError(t, err)

	input.CustomerName = strings.Repeat("श", 201)
	_, err = svc.CreateBooking(context.Background(), input)
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, "customer_name", validation.Field)
}

func TestCreateBooking_TodayIsAccepted(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, nil)

	input := sampleInput()
	input.BookingStartDate = testToday // 11:30 on the day; only the date matters
	input.BookingEndDate = testToday

	_, err := svc.CreateBooking(context.Background(), input)
	assert.NoError(t, err)
}

func TestCreateBooking_OutsideAvailableHours(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, nil)

	input := sampleInput()
	input.StartTime = "23:00"
	input.EndTime = "23:30"

	_, err := svc.CreateBooking(context.Background(), input)

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "09:00-22:00")
}

func TestCreateBooking_NoHoursWindowMeansOpenAllDay(t *testing.T) {
	hall := sampleHall()
	hall.AvailableFrom, hall.AvailableTo = "", ""
	hallRepo := &mockHallRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Hall, error) { return hall, nil },
	}
	svc := newTestService(&mockBookingRepo{}, hallRepo, nil)

	input := sampleInput()
	input.StartTime = "23:00"
	input.EndTime = "23:30"

	_, err := svc.CreateBooking(context.Background(), input)
	assert.NoError(t, err)
}

func TestCreateBooking_HallNotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, nil)

	input := sampleInput()
	input.HallID = 99

	_, err := svc.CreateBooking(context.Background(), input)
	assert.ErrorIs(t, err, ErrHallNotFound)
}

func existingBooking(id uint, start, end string, status models.BookingStatus) models.Booking {
	return models.Booking{
		ID:               id,
		HallID:           1,
		BookingStartDate: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		BookingEndDate:   time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		StartTime:        start,
		EndTime:          end,
		Status:           status,
	}
}

func TestCreateBooking_ConflictWithConfirmed(t *testing.T) {
	repo := &mockBookingRepo{
		findBlockingFn: func(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error) {
			return []models.Booking{existingBooking(7, "10:00", "14:00", models.StatusConfirmed)}, nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	input := sampleInput()
	input.StartTime = "13:00"
	input.EndTime = "16:00"

	_, err := svc.CreateBooking(context.Background(), input)

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, uint(7), conflict.BookingID)
}

func TestCreateBooking_ConflictWithPending(t *testing.T) {
	repo := &mockBookingRepo{
		findBlockingFn: func(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error) {
			return []models.Booking{existingBooking(8, "12:00", "18:00", models.StatusPending)}, nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	_, err := svc.CreateBooking(context.Background(), sampleInput())

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCreateBooking_BackToBackIsNotConflict(t *testing.T) {
	// Existing ends at 14:00, candidate starts at 14:00: half-open windows.
	repo := &mockBookingRepo{
		findBlockingFn: func(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error) {
			return []models.Booking{existingBooking(7, "10:00", "14:00", models.StatusConfirmed)}, nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	input := sampleInput()
	input.StartTime = "14:00"
	input.EndTime = "17:00"

	_, err := svc.CreateBooking(context.Background(), input)
	assert.NoError(t, err)
}

func TestCreateBooking_CancelledDoesNotBlock(t *testing.T) {
	repo := &mockBookingRepo{
		findBlockingFn: func(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error) {
			return []models.Booking{existingBooking(7, "10:00", "14:00", models.StatusCancelled)}, nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	_, err := svc.CreateBooking(context.Background(), sampleInput())
	assert.NoError(t, err)
}

func TestCreateBooking_MultiDayConflictOnSharedDay(t *testing.T) {
	// Existing spans Dec 24-26; candidate books Dec 25 in the same hours.
	repo := &mockBookingRepo{
		findBlockingFn: func(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error) {
			b := existingBooking(9, "10:00", "14:00", models.StatusConfirmed)
			b.BookingStartDate = time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)
			b.BookingEndDate = time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC)
			return []models.Booking{b}, nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	_, err := svc.CreateBooking(context.Background(), sampleInput())

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCreateBooking_SameDayDisjointHours(t *testing.T) {
	repo := &mockBookingRepo{
		findBlockingFn: func(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error) {
			return []models.Booking{existingBooking(7, "18:00", "21:00", models.StatusConfirmed)}, nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	_, err := svc.CreateBooking(context.Background(), sampleInput())
	assert.NoError(t, err)
}

// --- UpdateBookingStatus ---

func bookingInStatus(status models.BookingStatus) *models.Booking {
	b := existingBooking(1, "10:00", "14:00", status)
	return &b
}

func TestUpdateBookingStatus_PendingToConfirmed(t *testing.T) {
	pub := &mockPublisher{}
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return bookingInStatus(models.StatusPending), nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, pub)

	booking, err := svc.UpdateBookingStatus(context.Background(), 1, models.StatusConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)
	assert.Equal(t, []string{"booking.status_changed"}, pub.published)
}

func TestUpdateBookingStatus_ConfirmedBackToPending(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return bookingInStatus(models.StatusConfirmed), nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), 1, models.StatusPending)

	var transition *IllegalTransitionError
	assert.ErrorAs(t, err, &transition)
}

func TestUpdateBookingStatus_CancelTwice(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return bookingInStatus(models.StatusCancelled), nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	// Cancelling an already-cancelled booking is an error, not a no-op.
	_, err := svc.UpdateBookingStatus(context.Background(), 1, models.StatusCancelled)

	var transition *IllegalTransitionError
	assert.ErrorAs(t, err, &transition)
}

func TestUpdateBookingStatus_GuardUsesLockedRow(t *testing.T) {
	// An unlocked read still sees the booking as pending, but the locked
	// transactional read returns the committed cancel; the guard must act
	// on the latter and reject the confirm.
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return bookingInStatus(models.StatusPending), nil
		},
		findByIDForUpdateFn: func(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
			return bookingInStatus(models.StatusCancelled), nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), 1, models.StatusConfirmed)

	var transition *IllegalTransitionError
	assert.ErrorAs(t, err, &transition)
}

func TestUpdateBookingStatus_UnknownStatus(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), 1, models.BookingStatus("waitlisted"))

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUpdateBookingStatus_NotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockHallRepo{}, nil)

	_, err := svc.UpdateBookingStatus(context.Background(), 42, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

// --- DeleteBooking ---

func TestDeleteBooking_ConfirmedIsProtected(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return bookingInStatus(models.StatusConfirmed), nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	err := svc.DeleteBooking(context.Background(), 1)
	assert.ErrorIs(t, err, ErrIllegalDeletion)
}

func TestDeleteBooking_CancelledSucceeds(t *testing.T) {
	deleted := false
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return bookingInStatus(models.StatusCancelled), nil
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	err := svc.DeleteBooking(context.Background(), 1)

	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestDeleteBooking_PendingSucceeds(t *testing.T) {
	repo := &mockBookingRepo{
		findByIDFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return bookingInStatus(models.StatusPending), nil
		},
	}
	svc := newTestService(repo, &mockHallRepo{}, nil)

	assert.NoError(t, svc.DeleteBooking(context.Background(), 1))
}
