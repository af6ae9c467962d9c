package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"

	"github.com/templedesk/temple-booking/internal/models"
	"github.com/templedesk/temple-booking/internal/repository"
	"github.com/templedesk/temple-booking/internal/timerange"
	"gorm.io/gorm"
)

// HallUpdate carries a partial update; nil fields are left unchanged.
type HallUpdate struct {
	Name          *string
	Capacity      *int
	Facilities    []string
	AvailableFrom *string
	AvailableTo   *string
	BasePrice     *float64
	PricePerHour  *float64
}

type HallService interface {
	CreateHall(ctx context.Context, hall *models.Hall) error
	GetHall(ctx context.Context, id uint) (*models.Hall, error)
	ListHalls(ctx context.Context, skip, limit int) ([]models.Hall, error)
	UpdateHall(ctx context.Context, id uint, update HallUpdate) (*models.Hall, error)
	DeleteHall(ctx context.Context, id uint) error
}

type hallService struct {
	hallRepo    repository.HallRepository
	bookingRepo repository.BookingRepository
}

func NewHallService(hallRepo repository.HallRepository, bookingRepo repository.BookingRepository) HallService {
	return &hallService{hallRepo: hallRepo, bookingRepo: bookingRepo}
}

func marshalFacilities(facilities []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(facilities)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func validateHall(hall *models.Hall) error {
	if !validName(hall.Name) {
		return invalidField("name", "must be non-empty and at most %d characters", maxNameLength)
	}
	if hall.Capacity <= 0 {
		return invalidField("capacity", "must be greater than zero")
	}
	if hall.BasePrice < 0 {
		return invalidField("base_price", "must not be negative")
	}
	if hall.PricePerHour < 0 {
		return invalidField("price_per_hour", "must not be negative")
	}
	if (hall.AvailableFrom == "") != (hall.AvailableTo == "") {
		return invalidField("available_from", "available_from and available_to must be set together")
	}
	if hall.AvailableFrom != "" {
		if _, err := timerange.ParseTimeRange(hall.AvailableFrom, hall.AvailableTo); err != nil {
			return invalidField("available_to", "%v", err)
		}
	}
	return nil
}

func (s *hallService) CreateHall(ctx context.Context, hall *models.Hall) error {
	if err := validateHall(hall); err != nil {
		return err
	}

	if _, err := s.hallRepo.FindByName(ctx, hall.Name); err == nil {
		return ErrHallNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.hallRepo.Create(ctx, hall)
}

func (s *hallService) GetHall(ctx context.Context, id uint) (*models.Hall, error) {
	hall, err := s.hallRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return hall, nil
}

func (s *hallService) ListHalls(ctx context.Context, skip, limit int) ([]models.Hall, error) {
	return s.hallRepo.FindAll(ctx, skip, limit)
}

func (s *hallService) UpdateHall(ctx context.Context, id uint, update HallUpdate) (*models.Hall, error) {
	hall, err := s.GetHall(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != hall.Name {
		if _, err := s.hallRepo.FindByName(ctx, *update.Name); err == nil {
			return nil, ErrHallNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hall.Name = *update.Name
	}
	if update.Capacity != nil {
		hall.Capacity = *update.Capacity
	}
	if update.Facilities != nil {
		facilities, err := marshalFacilities(update.Facilities)
		if err != nil {
			return nil, invalidField("facilities", "%v", err)
		}
		hall.Facilities = facilities
	}
	if update.AvailableFrom != nil {
		hall.AvailableFrom = *update.AvailableFrom
	}
	if update.AvailableTo != nil {
		hall.AvailableTo = *update.AvailableTo
	}
	if update.BasePrice != nil {
		hall.BasePrice = *update.BasePrice
	}
	if update.PricePerHour != nil {
		hall.PricePerHour = *update.PricePerHour
	}

	if err := validateHall(hall); err != nil {
		return nil, err
	}
	if err := s.hallRepo.Save(ctx, hall); err != nil {
		return nil, err
	}
	return hall, nil
}

// DeleteHall refuses while any non-cancelled booking still references the
// hall; cancellation frees the hall for deletion.
func (s *hallService) DeleteHall(ctx context.Context, id uint) error {
	if _, err := s.GetHall(ctx, id); err != nil {
		return err
	}

	active, err := s.bookingRepo.CountActiveByHall(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrHallHasBookings
	}

	return s.hallRepo.Delete(ctx, id)
}
