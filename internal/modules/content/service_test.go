package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) Create(ctx context.Context, t *domain.EmailTemplate) error {
	args := m.Called(ctx, t)
	if t != nil {
		t.ID = 999
	}
	return args.Error(0)
}

func (m *MockTemplateRepository) GetByID(ctx context.Context, id int64) (*domain.EmailTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *MockTemplateRepository) GetBySlug(ctx context.Context, slug string) (*domain.EmailTemplate, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailTemplate), args.Error(1)
}

func (m *MockTemplateRepository) List(ctx context.Context) ([]domain.EmailTemplate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EmailTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Update(ctx context.Context, t *domain.EmailTemplate) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTermsRepository struct {
	mock.Mock
}

func (m *MockTermsRepository) Get(ctx context.Context) (*domain.TermsDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TermsDocument), args.Error(1)
}

func (m *MockTermsRepository) Save(ctx context.Context, title, body, updatedBy string) (*domain.TermsDocument, error) {
	args := m.Called(ctx, title, body, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TermsDocument), args.Error(1)
}

func admin() domain.Actor {
	return domain.Actor{ID: 1, Name: "Admin"}
}

func TestService_CreateTemplate_NormalizesSlug(t *testing.T) {
	templates := new(MockTemplateRepository)
	templates.On("GetBySlug", mock.Anything, "reservation-created").Return(nil, gorm.ErrRecordNotFound)
	templates.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(templates, new(MockTermsRepository), nil)

	out, err := service.CreateTemplate(context.Background(), admin(), CreateTemplateRequest{
		Slug: "  Reservation-Created ",
		Name: "Reservation created",
		Body: "Thank you.",
	})
	assert.NoError(t, err)
	assert.Equal(t, "reservation-created", out.Slug)
	assert.True(t, out.Active)
}

func TestService_CreateTemplate_DuplicateSlug(t *testing.T) {
	templates := new(MockTemplateRepository)
	templates.On("GetBySlug", mock.Anything, "reservation-created").Return(&domain.EmailTemplate{ID: 1}, nil)

	service := NewService(templates, new(MockTermsRepository), nil)

	_, err := service.CreateTemplate(context.Background(), admin(), CreateTemplateRequest{
		Slug: "reservation-created",
		Name: "Duplicate",
		Body: "x",
	})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestService_UpdateTemplate_NotFound(t *testing.T) {
	templates := new(MockTemplateRepository)
	templates.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(templates, new(MockTermsRepository), nil)

	name := "Renamed"
	_, err := service.UpdateTemplate(context.Background(), admin(), 42, UpdateTemplateRequest{Name: &name})
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestService_GetTerms_NotFound(t *testing.T) {
	terms := new(MockTermsRepository)
	terms.On("Get", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockTemplateRepository), terms, nil)

	_, err := service.GetTerms(context.Background())
	assert.ErrorIs(t, err, ErrTermsNotFound)
}

func TestService_SaveTerms_RecordsUpdater(t *testing.T) {
	terms := new(MockTermsRepository)
	terms.On("Save", mock.Anything, "Rental terms", "Check-in from 15:00.", "Admin").
		Return(&domain.TermsDocument{Title: "Rental terms", Body: "Check-in from 15:00.", Version: 2, UpdatedBy: "Admin"}, nil)

	service := NewService(new(MockTemplateRepository), terms, nil)

	out, err := service.SaveTerms(context.Background(), admin(), "Rental terms", "Check-in from 15:00.")
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Version)
	assert.Equal(t, "Admin", out.UpdatedBy)
}
