package repository

import (
	"context"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

type ActivityFilters struct {
	Action  string
	ActorID int64
	Limit   int
	Offset  int
}

func (r *ActivityLogRepository) Create(ctx context.Context, e *domain.ActivityLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ActivityLogRepository) List(ctx context.Context, f ActivityFilters) ([]domain.ActivityLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.ActivityLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.ActorID > 0 {
		q = q.Where("actor_id = ?", f.ActorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.ActivityLog
	tx := q.Order("id DESC").Limit(f.Limit).Offset(f.Offset).Find(&out)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}
	return out, total, nil
}
