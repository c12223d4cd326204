package repository

import (
	"context"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

type ExtraServiceRepository struct {
	db *gorm.DB
}

func NewExtraServiceRepository(db *gorm.DB) *ExtraServiceRepository {
	return &ExtraServiceRepository{db: db}
}

func (r *ExtraServiceRepository) Create(ctx context.Context, s *domain.ExtraService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ExtraServiceRepository) GetByID(ctx context.Context, id int64) (*domain.ExtraService, error) {
	var s domain.ExtraService
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ExtraServiceRepository) List(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error) {
	q := r.db.WithContext(ctx).Model(&domain.ExtraService{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var out []domain.ExtraService
	tx := q.Order("name").Find(&out)
	return out, tx.Error
}

func (r *ExtraServiceRepository) Update(ctx context.Context, s *domain.ExtraService) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ExtraServiceRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.ExtraService{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
