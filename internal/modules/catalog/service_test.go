package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bungalowpark/internal/domain"
	"bungalowpark/internal/repository"
)

type MockBungalowRepository struct {
	mock.Mock
}

func (m *MockBungalowRepository) Create(ctx context.Context, b *domain.Bungalow) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999
	}
	return args.Error(0)
}

func (m *MockBungalowRepository) GetByID(ctx context.Context, id int64) (*domain.Bungalow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bungalow), args.Error(1)
}

func (m *MockBungalowRepository) List(ctx context.Context, f repository.BungalowFilters) ([]domain.Bungalow, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Bungalow), args.Get(1).(int64), args.Error(2)
}

func (m *MockBungalowRepository) Update(ctx context.Context, b *domain.Bungalow) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBungalowRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBungalowRepository) ActiveReservationCounts(ctx context.Context, ids []int64) (map[int64]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

type MockExtraServiceRepository struct {
	mock.Mock
}

func (m *MockExtraServiceRepository) Create(ctx context.Context, s *domain.ExtraService) error {
	args := m.Called(ctx, s)
	if s != nil {
		s.ID = 999
	}
	return args.Error(0)
}

func (m *MockExtraServiceRepository) GetByID(ctx context.Context, id int64) (*domain.ExtraService, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtraService), args.Error(1)
}

func (m *MockExtraServiceRepository) List(ctx context.Context, activeOnly bool) ([]domain.ExtraService, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.ExtraService), args.Error(1)
}

func (m *MockExtraServiceRepository) Update(ctx context.Context, s *domain.ExtraService) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockExtraServiceRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func admin() domain.Actor {
	return domain.Actor{ID: 1, Name: "Admin"}
}

func TestService_CreateBungalow_DefaultsToActive(t *testing.T) {
	bungalows := new(MockBungalowRepository)
	bungalows.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(bungalows, new(MockExtraServiceRepository), nil)

	b, err := service.CreateBungalow(context.Background(), admin(), CreateBungalowRequest{
		Name:          "Seaside 1",
		Capacity:      4,
		PricePerNight: 120.456,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.BungalowActive, b.Status)
	assert.Equal(t, 120.46, b.PricePerNight)
}

func TestService_ListBungalows_DecoratesCounts(t *testing.T) {
	bungalows := new(MockBungalowRepository)
	rows := []domain.Bungalow{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	bungalows.On("List", mock.Anything, mock.Anything).Return(rows, int64(2), nil)
	bungalows.On("ActiveReservationCounts", mock.Anything, []int64{1, 2}).Return(map[int64]int64{1: 3}, nil)

	service := NewService(bungalows, new(MockExtraServiceRepository), nil)

	out, total, err := service.ListBungalows(context.Background(), repository.BungalowFilters{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(3), out[0].ReservationsCount)
	assert.Equal(t, int64(0), out[1].ReservationsCount)
}

func TestService_GetBungalow_NotFound(t *testing.T) {
	bungalows := new(MockBungalowRepository)
	bungalows.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(bungalows, new(MockExtraServiceRepository), nil)

	_, err := service.GetBungalow(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBungalowNotFound)
}

func TestService_CreateService_FreePricingZeroesPrice(t *testing.T) {
	services := new(MockExtraServiceRepository)
	services.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(new(MockBungalowRepository), services, nil)

	svc, err := service.CreateService(context.Background(), admin(), CreateServiceRequest{
		Name:    "Welcome drink",
		Price:   15,
		Pricing: "free",
	})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, svc.Price)
	assert.True(t, svc.Active)
}

func TestService_UpdateService_NotFound(t *testing.T) {
	services := new(MockExtraServiceRepository)
	services.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockBungalowRepository), services, nil)

	name := "Renamed"
	_, err := service.UpdateService(context.Background(), admin(), 42, UpdateServiceRequest{Name: &name})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
