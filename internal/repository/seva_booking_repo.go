package repository

import (
	"context"
	"time"

	"github.com/templedesk/temple-booking/internal/models"
	"gorm.io/gorm"
)

// SevaBookingFilter narrows FindAll. Nil/zero values mean "no filter".
type SevaBookingFilter struct {
	MobileNo string
	SevaDate *time.Time
	SevaIDs  []uint
	DateFrom *time.Time
	DateTo   *time.Time
	Skip     int
	Limit    int
}

type SevaBookingRepository interface {
	Create(ctx context.Context, booking *models.SevaBooking) error
	FindByID(ctx context.Context, id uint) (*models.SevaBooking, error)
	FindAll(ctx context.Context, filter SevaBookingFilter) ([]models.SevaBooking, error)
	Count(ctx context.Context, filter SevaBookingFilter) (int64, error)
	Save(ctx context.Context, booking *models.SevaBooking) error
	UpdateStatus(ctx context.Context, bookingID uint, status models.BookingStatus) error
	Delete(ctx context.Context, id uint) error
}

type sevaBookingRepository struct {
	db *gorm.DB
}

func NewSevaBookingRepository(db *gorm.DB) SevaBookingRepository {
	return &sevaBookingRepository{db: db}
}

func (r *sevaBookingRepository) Create(ctx context.Context, booking *models.SevaBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *sevaBookingRepository) FindByID(ctx context.Context, id uint) (*models.SevaBooking, error) {
	var booking models.SevaBooking
	if err := r.db.WithContext(ctx).
		Preload("Seva").Preload("Gotra").
		First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func applySevaBookingFilter(q *gorm.DB, filter SevaBookingFilter) *gorm.DB {
	if filter.MobileNo != "" {
		q = q.Where("mobile_no = ?", filter.MobileNo)
	}
	if filter.SevaDate != nil {
		q = q.Where("seva_date = ?", *filter.SevaDate)
	}
	if len(filter.SevaIDs) > 0 {
		q = q.Where("seva_id IN ?", filter.SevaIDs)
	}
	if filter.DateFrom != nil {
		q = q.Where("seva_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("seva_date <= ?", *filter.DateTo)
	}
	return q
}

func (r *sevaBookingRepository) FindAll(ctx context.Context, filter SevaBookingFilter) ([]models.SevaBooking, error) {
	var bookings []models.SevaBooking
	q := applySevaBookingFilter(r.db.WithContext(ctx).Preload("Seva").Preload("Gotra"), filter).
		Order("receipt_date DESC, id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Offset(filter.Skip).Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *sevaBookingRepository) Count(ctx context.Context, filter SevaBookingFilter) (int64, error) {
	var count int64
	q := applySevaBookingFilter(r.db.WithContext(ctx).Model(&models.SevaBooking{}), filter)
	err := q.Count(&count).Error
	return count, err
}

func (r *sevaBookingRepository) Save(ctx context.Context, booking *models.SevaBooking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

func (r *sevaBookingRepository) UpdateStatus(ctx context.Context, bookingID uint, status models.BookingStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.SevaBooking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

func (r *sevaBookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SevaBooking{}, id).Error
}
