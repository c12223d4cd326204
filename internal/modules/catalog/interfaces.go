package catalog

import (
	"context"

	"bungalowpark/internal/domain"
	"bungalowpark/internal/repository"
)

type BungalowRepository interface {
	Create(ctx context.Context, b *domain.Bungalow) error
	GetByID(ctx context.Context, id int64) (*domain.Bungalow, error)
	List(ctx context.Context, f repository.BungalowFilters) ([]domain.Bungalow, int64, error)
	Update(ctx context.Context, b *domain.Bungalow) error
	Delete(ctx context.Context, id int64) error
	ActiveReservationCounts(ctx context.Context, ids []int64) (map[int64]int64, error)
}

type ExtraServiceRepository interface {
	Create(ctx context.Context, s *domain.ExtraService) error
	GetByID(ctx context.Context, id int64) (*domain.ExtraService, error)
	List(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error)
	Update(ctx context.Context, s *domain.ExtraService) error
	Delete(ctx context.Context, id int64) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) error
}
