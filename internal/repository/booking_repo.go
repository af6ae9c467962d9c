package repository

import (
	"context"
	"time"

	"github.com/templedesk/temple-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingFilter narrows FindAll. Zero values mean "no filter".
type BookingFilter struct {
	Status   *models.BookingStatus
	HallID   uint
	DateFrom *time.Time
	DateTo   *time.Time
	Skip     int
	Limit    int
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	// FindBlocking returns pending/confirmed bookings for the hall whose date
	// span touches [dateFrom, dateTo].
	FindBlocking(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error)
	FindOverlappingWindow(ctx context.Context, dateFrom, dateTo time.Time, hallID uint, includeCancelled bool) ([]models.Booking, error)
	CountActiveByHall(ctx context.Context, hallID uint) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	Delete(ctx context.Context, id uint) error
	// WithTransaction runs fn inside a database transaction; fn's tx must be
	// passed to the repository calls that should share it.
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Preload("Hall").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate locks the booking row inside the given transaction so
// lifecycle guards run against the committed status, not a stale snapshot.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Hall").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Preload("Hall")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.HallID != 0 {
		q = q.Where("hall_id = ?", filter.HallID)
	}
	if filter.DateFrom != nil {
		q = q.Where("booking_end_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("booking_start_date <= ?", *filter.DateTo)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Offset(filter.Skip).Order("id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindBlocking(ctx context.Context, tx *gorm.DB, hallID uint, dateFrom, dateTo time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := tx.WithContext(ctx).
		Where("hall_id = ?", hallID).
		Where("booking_start_date <= ? AND booking_end_date >= ?", dateTo, dateFrom).
		Where("status IN ?", []models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindOverlappingWindow serves the calendar views: bookings whose date span
// touches the window, optionally narrowed to one hall.
func (r *bookingRepository) FindOverlappingWindow(ctx context.Context, dateFrom, dateTo time.Time, hallID uint, includeCancelled bool) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Preload("Hall").
		Where("booking_start_date <= ? AND booking_end_date >= ?", dateTo, dateFrom)
	if hallID != 0 {
		q = q.Where("hall_id = ?", hallID)
	}
	if !includeCancelled {
		q = q.Where("status <> ?", models.StatusCancelled)
	}
	if err := q.Order("booking_start_date ASC, start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) CountActiveByHall(ctx context.Context, hallID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("hall_id = ? AND status <> ?", hallID, models.StatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}
