package customer

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
	"bungalowpark/internal/repository"
)

var ErrNotFound = errors.New("customer not found")

type CreateCustomerRequest struct {
	FullName string `json:"full_name" validate:"required,max=160"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	IDNumber string `json:"id_number" validate:"omitempty,max=64"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive banned"`
}

type UpdateCustomerRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=160"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	IDNumber *string `json:"id_number" validate:"omitempty,max=64"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive banned"`
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, f repository.CustomerFilters) ([]domain.Customer, int64, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	StatsFor(ctx context.Context, ids []int64) (map[int64]repository.CustomerStats, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) error
}

type Service struct {
	customers CustomerRepository
	recorder  ActivityRecorder
}

func NewService(customers CustomerRepository, recorder ActivityRecorder) *Service {
	return &Service{customers: customers, recorder: recorder}
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateCustomerRequest) (*domain.Customer, error) {
	status := domain.CustomerActive
	if req.Status != "" {
		status = domain.CustomerStatus(req.Status)
	}

	c := &domain.Customer{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		IDNumber: req.IDNumber,
		Address:  req.Address,
		Notes:    req.Notes,
		Status:   status,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "customer.created", map[string]any{"customer_id": c.ID, "name": c.FullName})
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	stats, err := s.customers.StatsFor(ctx, []int64{c.ID})
	if err != nil {
		return nil, err
	}
	if st, ok := stats[c.ID]; ok {
		c.ReservationsCount = st.ReservationsCount
		c.TotalSpent = st.TotalSpent
	}
	return c, nil
}

// List decorates each customer with spend/count aggregates computed at read
// time; nothing is denormalized onto the customer rows.
func (s *Service) List(ctx context.Context, f repository.CustomerFilters) ([]domain.Customer, int64, error) {
	rows, total, err := s.customers.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(rows))
	for _, c := range rows {
		ids = append(ids, c.ID)
	}
	stats, err := s.customers.StatsFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range rows {
		if st, ok := stats[rows[i].ID]; ok {
			rows[i].ReservationsCount = st.ReservationsCount
			rows[i].TotalSpent = st.TotalSpent
		}
	}
	return rows, total, nil
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateCustomerRequest) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.FullName != nil {
		c.FullName = *req.FullName
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.IDNumber != nil {
		c.IDNumber = *req.IDNumber
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if req.Status != nil {
		c.Status = domain.CustomerStatus(*req.Status)
	}

	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "customer.updated", map[string]any{"customer_id": c.ID, "name": c.FullName})
	return c, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.record(ctx, actor, "customer.deleted", map[string]any{"customer_id": id})
	return nil
}

func (s *Service) record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) {
	if s.recorder != nil {
		_ = s.recorder.Record(ctx, actor, action, meta)
	}
}
