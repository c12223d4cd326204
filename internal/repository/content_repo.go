package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

type EmailTemplateRepository struct {
	db *gorm.DB
}

func NewEmailTemplateRepository(db *gorm.DB) *EmailTemplateRepository {
	return &EmailTemplateRepository{db: db}
}

func (r *EmailTemplateRepository) Create(ctx context.Context, t *domain.EmailTemplate) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *EmailTemplateRepository) GetByID(ctx context.Context, id int64) (*domain.EmailTemplate, error) {
	var t domain.EmailTemplate
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *EmailTemplateRepository) GetBySlug(ctx context.Context, slug string) (*domain.EmailTemplate, error) {
	var t domain.EmailTemplate
	tx := r.db.WithContext(ctx).Where("slug = ?", slug).First(&t)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &t, nil
}

func (r *EmailTemplateRepository) List(ctx context.Context) ([]domain.EmailTemplate, error) {
	var out []domain.EmailTemplate
	tx := r.db.WithContext(ctx).Order("name").Find(&out)
	return out, tx.Error
}

func (r *EmailTemplateRepository) Update(ctx context.Context, t *domain.EmailTemplate) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *EmailTemplateRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.EmailTemplate{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type TermsRepository struct {
	db *gorm.DB
}

func NewTermsRepository(db *gorm.DB) *TermsRepository {
	return &TermsRepository{db: db}
}

func (r *TermsRepository) Get(ctx context.Context) (*domain.TermsDocument, error) {
	var t domain.TermsDocument
	tx := r.db.WithContext(ctx).Order("id").First(&t)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &t, nil
}

// Save upserts the singleton document, bumping its version.
func (r *TermsRepository) Save(ctx context.Context, title, body, updatedBy string) (*domain.TermsDocument, error) {
	existing, err := r.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		t := domain.TermsDocument{Title: title, Body: body, Version: 1, UpdatedBy: updatedBy}
		if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
			return nil, err
		}
		return &t, nil
	}

	existing.Title = title
	existing.Body = body
	existing.Version++
	existing.UpdatedBy = updatedBy
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
