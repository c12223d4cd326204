package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, name string) (*domain.Setting, error) {
	var s domain.Setting
	tx := r.db.WithContext(ctx).Where("name = ?", name).First(&s)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *SettingRepository) Save(ctx context.Context, s *domain.Setting) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// EnsureDefaults creates the named settings records missing from the store.
// Run once at boot; existing records are never overwritten.
func (r *SettingRepository) EnsureDefaults(ctx context.Context, defaults map[string]map[string]any) error {
	for name, data := range defaults {
		_, err := r.Get(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		s := domain.Setting{Name: name, Data: data}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
