package repository

import (
	"context"

	"github.com/templedesk/temple-booking/internal/models"
	"gorm.io/gorm"
)

type SevaRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Seva, error)
	FindAll(ctx context.Context) ([]models.Seva, error)
	SearchByName(ctx context.Context, query string) ([]models.Seva, error)
}

type sevaRepository struct {
	db *gorm.DB
}

func NewSevaRepository(db *gorm.DB) SevaRepository {
	return &sevaRepository{db: db}
}

func (r *sevaRepository) FindByID(ctx context.Context, id uint) (*models.Seva, error) {
	var seva models.Seva
	if err := r.db.WithContext(ctx).First(&seva, id).Error; err != nil {
		return nil, err
	}
	return &seva, nil
}

func (r *sevaRepository) FindAll(ctx context.Context) ([]models.Seva, error) {
	var sevas []models.Seva
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&sevas).Error; err != nil {
		return nil, err
	}
	return sevas, nil
}

func (r *sevaRepository) SearchByName(ctx context.Context, query string) ([]models.Seva, error) {
	var sevas []models.Seva
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Find(&sevas).Error; err != nil {
		return nil, err
	}
	return sevas, nil
}

type GotraRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Gotra, error)
	FindAll(ctx context.Context) ([]models.Gotra, error)
}

type gotraRepository struct {
	db *gorm.DB
}

func NewGotraRepository(db *gorm.DB) GotraRepository {
	return &gotraRepository{db: db}
}

func (r *gotraRepository) FindByID(ctx context.Context, id uint) (*models.Gotra, error) {
	var gotra models.Gotra
	if err := r.db.WithContext(ctx).First(&gotra, id).Error; err != nil {
		return nil, err
	}
	return &gotra, nil
}

func (r *gotraRepository) FindAll(ctx context.Context) ([]models.Gotra, error) {
	var gotras []models.Gotra
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&gotras).Error; err != nil {
		return nil, err
	}
	return gotras, nil
}
