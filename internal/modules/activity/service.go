package activity

import (
	"context"

	"go.uber.org/zap"

	"bungalowpark/internal/domain"
	"bungalowpark/internal/repository"
)

// Service writes audit rows. Recording is best-effort for callers; a failed
// audit write is logged but never fails the business operation.
type Service struct {
	logs *repository.ActivityLogRepository
	log  *zap.Logger
}

func NewService(logs *repository.ActivityLogRepository, log *zap.Logger) *Service {
	return &Service{logs: logs, log: log}
}

func (s *Service) Record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) error {
	entry := domain.ActivityLog{
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		Status:    "success",
		IPAddress: actor.IP,
		Metadata:  meta,
	}
	if err := s.logs.Create(ctx, &entry); err != nil {
		if s.log != nil {
			s.log.Warn("activity write failed", zap.String("action", action), zap.Error(err))
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, f repository.ActivityFilters) ([]domain.ActivityLog, int64, error) {
	return s.logs.List(ctx, f)
}
