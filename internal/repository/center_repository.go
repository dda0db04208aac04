package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carebook/internal/model"
)

// CenterRepository defines center persistence operations.
type CenterRepository interface {
	Create(ctx context.Context, center *model.Center) error
	Update(ctx context.Context, center *model.Center) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Center, error)
	List(ctx context.Context) ([]model.Center, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type centerRepository struct {
	db *gorm.DB
}

// NewCenterRepository builds a GORM-backed repository.
func NewCenterRepository(db *gorm.DB) CenterRepository {
	return &centerRepository{db: db}
}

func (r *centerRepository) Create(ctx context.Context, center *model.Center) error {
	return r.db.WithContext(ctx).Create(center).Error
}

func (r *centerRepository) Update(ctx context.Context, center *model.Center) error {
	return r.db.WithContext(ctx).Save(center).Error
}

func (r *centerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Center, error) {
	var center model.Center
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&center).Error; err != nil {
		return nil, err
	}
	return &center, nil
}

func (r *centerRepository) List(ctx context.Context) ([]model.Center, error) {
	var centers []model.Center
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&centers).Error; err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *centerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Center{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
