package content

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

var (
	ErrTemplateNotFound = errors.New("email template not found")
	ErrSlugTaken        = errors.New("slug already in use")
	ErrTermsNotFound    = errors.New("terms document not found")
)

type TemplateRepository interface {
	Create(ctx context.Context, t *domain.EmailTemplate) error
	GetByID(ctx context.Context, id int64) (*domain.EmailTemplate, error)
	GetBySlug(ctx context.Context, slug string) (*domain.EmailTemplate, error)
	List(ctx context.Context) ([]domain.EmailTemplate, error)
	Update(ctx context.Context, t *domain.EmailTemplate) error
	Delete(ctx context.Context, id int64) error
}

type TermsRepository interface {
	Get(ctx context.Context) (*domain.TermsDocument, error)
	Save(ctx context.Context, title, body, updatedBy string) (*domain.TermsDocument, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) error
}

type Service struct {
	templates TemplateRepository
	terms     TermsRepository
	recorder  ActivityRecorder
}

func NewService(templates TemplateRepository, terms TermsRepository, recorder ActivityRecorder) *Service {
	return &Service{templates: templates, terms: terms, recorder: recorder}
}

/* ---------- EMAIL TEMPLATES ---------- */

func (s *Service) ListTemplates(ctx context.Context) ([]domain.EmailTemplate, error) {
	return s.templates.List(ctx)
}

func (s *Service) GetTemplate(ctx context.Context, id int64) (*domain.EmailTemplate, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) CreateTemplate(ctx context.Context, actor domain.Actor, req CreateTemplateRequest) (*domain.EmailTemplate, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if _, err := s.templates.GetBySlug(ctx, slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := &domain.EmailTemplate{
		Slug:    slug,
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
		Active:  true,
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "email_template.created", map[string]any{"id": t.ID, "slug": t.Slug})
	return t, nil
}

func (s *Service) UpdateTemplate(ctx context.Context, actor domain.Actor, id int64, req UpdateTemplateRequest) (*domain.EmailTemplate, error) {
	t, err := s.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*req.Slug))
		if slug != t.Slug {
			if other, err := s.templates.GetBySlug(ctx, slug); err == nil && other.ID != t.ID {
				return nil, ErrSlugTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			t.Slug = slug
		}
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Subject != nil {
		t.Subject = *req.Subject
	}
	if req.Body != nil {
		t.Body = *req.Body
	}
	if req.Active != nil {
		t.Active = *req.Active
	}

	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "email_template.updated", map[string]any{"id": t.ID, "slug": t.Slug})
	return t, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}

	s.record(ctx, actor, "email_template.deleted", map[string]any{"id": id})
	return nil
}

/* ---------- TERMS ---------- */

func (s *Service) GetTerms(ctx context.Context) (*domain.TermsDocument, error) {
	t, err := s.terms.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTermsNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) SaveTerms(ctx context.Context, actor domain.Actor, title, body string) (*domain.TermsDocument, error) {
	t, err := s.terms.Save(ctx, title, body, actor.Name)
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "terms.updated", map[string]any{"version": t.Version})
	return t, nil
}

func (s *Service) record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) {
	if s.recorder != nil {
		_ = s.recorder.Record(ctx, actor, action, meta)
	}
}
