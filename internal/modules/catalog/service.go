package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
	"bungalowpark/internal/repository"
)

type Service struct {
	bungalows BungalowRepository
	services  ExtraServiceRepository
	recorder  ActivityRecorder
}

func NewService(bungalows BungalowRepository, services ExtraServiceRepository, recorder ActivityRecorder) *Service {
	return &Service{bungalows: bungalows, services: services, recorder: recorder}
}

/* ---------- BUNGALOWS ---------- */

func (s *Service) CreateBungalow(ctx context.Context, actor domain.Actor, req CreateBungalowRequest) (*domain.Bungalow, error) {
	status := domain.BungalowActive
	if req.Status != "" {
		status = domain.BungalowStatus(req.Status)
	}

	b := &domain.Bungalow{
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		PricePerNight: domain.RoundMoney(req.PricePerNight),
		Status:        status,
	}
	if err := s.bungalows.Create(ctx, b); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "bungalow.created", map[string]any{"bungalow_id": b.ID, "name": b.Name})
	return b, nil
}

func (s *Service) GetBungalow(ctx context.Context, id int64) (*domain.Bungalow, error) {
	b, err := s.bungalows.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBungalowNotFound
		}
		return nil, err
	}

	counts, err := s.bungalows.ActiveReservationCounts(ctx, []int64{b.ID})
	if err != nil {
		return nil, err
	}
	b.ReservationsCount = counts[b.ID]
	return b, nil
}

// ListBungalows decorates each row with its derived active-reservation count.
func (s *Service) ListBungalows(ctx context.Context, f repository.BungalowFilters) ([]domain.Bungalow, int64, error) {
	rows, total, err := s.bungalows.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(rows))
	for _, b := range rows {
		ids = append(ids, b.ID)
	}
	counts, err := s.bungalows.ActiveReservationCounts(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		rows[i].ReservationsCount = counts[rows[i].ID]
	}
	return rows, total, nil
}

func (s *Service) UpdateBungalow(ctx context.Context, actor domain.Actor, id int64, req UpdateBungalowRequest) (*domain.Bungalow, error) {
	b, err := s.bungalows.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBungalowNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		b.Name = *req.Name
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Capacity != nil {
		b.Capacity = *req.Capacity
	}
	if req.PricePerNight != nil {
		b.PricePerNight = domain.RoundMoney(*req.PricePerNight)
	}
	if req.Status != nil {
		b.Status = domain.BungalowStatus(*req.Status)
	}

	if err := s.bungalows.Update(ctx, b); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "bungalow.updated", map[string]any{"bungalow_id": b.ID, "name": b.Name})
	return b, nil
}

func (s *Service) DeleteBungalow(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.bungalows.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBungalowNotFound
		}
		return err
	}
	s.record(ctx, actor, "bungalow.deleted", map[string]any{"bungalow_id": id})
	return nil
}

/* ---------- EXTRA SERVICES ---------- */

func (s *Service) CreateService(ctx context.Context, actor domain.Actor, req CreateServiceRequest) (*domain.ExtraService, error) {
	svc := &domain.ExtraService{
		Name:        req.Name,
		Description: req.Description,
		Price:       domain.RoundMoney(req.Price),
		Pricing:     domain.ServicePricing(req.Pricing),
		Active:      true,
	}
	if svc.Pricing == domain.PricingFree {
		svc.Price = 0
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "service.created", map[string]any{"service_id": svc.ID, "name": svc.Name})
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error) {
	return s.services.List(ctx, activeOnly)
}

func (s *Service) UpdateService(ctx context.Context, actor domain.Actor, id int64, req UpdateServiceRequest) (*domain.ExtraService, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = domain.RoundMoney(*req.Price)
	}
	if req.Pricing != nil {
		svc.Pricing = domain.ServicePricing(*req.Pricing)
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "service.updated", map[string]any{"service_id": svc.ID, "name": svc.Name})
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return err
	}
	s.record(ctx, actor, "service.deleted", map[string]any{"service_id": id})
	return nil
}

func (s *Service) record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) {
	if s.recorder != nil {
		_ = s.recorder.Record(ctx, actor, action, meta)
	}
}
