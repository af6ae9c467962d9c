package repository

import (
	"context"

	"github.com/templedesk/temple-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HallRepository interface {
	Create(ctx context.Context, hall *models.Hall) error
	FindByID(ctx context.Context, id uint) (*models.Hall, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Hall, error)
	FindByName(ctx context.Context, name string) (*models.Hall, error)
	FindAll(ctx context.Context, skip, limit int) ([]models.Hall, error)
	Save(ctx context.Context, hall *models.Hall) error
	Delete(ctx context.Context, id uint) error
}

type hallRepository struct {
	db *gorm.DB
}

func NewHallRepository(db *gorm.DB) HallRepository {
	return &hallRepository{db: db}
}

func (r *hallRepository) Create(ctx context.Context, hall *models.Hall) error {
	return r.db.WithContext(ctx).Create(hall).Error
}

func (r *hallRepository) FindByID(ctx context.Context, id uint) (*models.Hall, error) {
	var hall models.Hall
	if err := r.db.WithContext(ctx).First(&hall, id).Error; err != nil {
		return nil, err
	}
	return &hall, nil
}

// FindByIDForUpdate acquires a row-level lock on the hall within the given
// transaction, serializing concurrent bookings for the same hall.
func (r *hallRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Hall, error) {
	var hall models.Hall
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&hall, id).Error; err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *hallRepository) FindByName(ctx context.Context, name string) (*models.Hall, error) {
	var hall models.Hall
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&hall).Error; err != nil {
		return nil, err
	}
	return &hall, nil
}

func (r *hallRepository) FindAll(ctx context.Context, skip, limit int) ([]models.Hall, error) {
	var halls []models.Hall
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).Limit(limit).
		Find(&halls).Error; err != nil {
		return nil, err
	}
	return halls, nil
}

func (r *hallRepository) Save(ctx context.Context, hall *models.Hall) error {
	return r.db.WithContext(ctx).Save(hall).Error
}

func (r *hallRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Hall{}, id).Error
}
