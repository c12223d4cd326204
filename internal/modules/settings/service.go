package settings

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"bungalowpark/internal/domain"
)

var ErrUnknownSetting = errors.New("unknown setting")

type SettingRepository interface {
	Get(ctx context.Context, name string) (*domain.Setting, error)
	Save(ctx context.Context, s *domain.Setting) error
	EnsureDefaults(ctx context.Context, defaults map[string]map[string]any) error
}

type ActivityRecorder interface {
	Record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) error
}

type Service struct {
	settings SettingRepository
	recorder ActivityRecorder

	// Fallback used when the reservation settings record is missing or holds
	// a non-positive value.
	defaultConfirmationTTL time.Duration
}

func NewService(settings SettingRepository, recorder ActivityRecorder, defaultConfirmationTTL time.Duration) *Service {
	return &Service{
		settings:               settings,
		recorder:               recorder,
		defaultConfirmationTTL: defaultConfirmationTTL,
	}
}

// Defaults are the initial singleton documents, created at boot when missing.
func Defaults(confirmationHours int) map[string]map[string]any {
	return map[string]map[string]any{
		domain.SettingCompany: {
			"name":    "",
			"email":   "",
			"phone":   "",
			"address": "",
		},
		domain.SettingReservation: {
			"confirmation_hours": confirmationHours,
			"min_guests":         1,
			"max_guests":         20,
		},
		domain.SettingSystem: {
			"maintenance_mode": false,
			"locale":           "en",
		},
	}
}

func (s *Service) EnsureDefaults(ctx context.Context, confirmationHours int) error {
	return s.settings.EnsureDefaults(ctx, Defaults(confirmationHours))
}

func (s *Service) Get(ctx context.Context, name string) (*domain.Setting, error) {
	if !known(name) {
		return nil, ErrUnknownSetting
	}
	return s.settings.Get(ctx, name)
}

func (s *Service) Update(ctx context.Context, actor domain.Actor, name string, data map[string]any) (*domain.Setting, error) {
	if !known(name) {
		return nil, ErrUnknownSetting
	}

	setting, err := s.settings.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		setting = &domain.Setting{Name: name}
	}

	setting.Data = data
	setting.UpdatedBy = actor.Name
	if err := s.settings.Save(ctx, setting); err != nil {
		return nil, err
	}

	s.record(ctx, actor, "settings.updated", map[string]any{"name": name})
	return setting, nil
}

// ConfirmationTTL implements the reservation module's PolicyProvider: the
// window is tunable at runtime through the reservation settings record.
func (s *Service) ConfirmationTTL(ctx context.Context) time.Duration {
	setting, err := s.settings.Get(ctx, domain.SettingReservation)
	if err != nil {
		return s.defaultConfirmationTTL
	}

	hours := numeric(setting.Data["confirmation_hours"])
	if hours <= 0 {
		return s.defaultConfirmationTTL
	}
	return time.Duration(hours * float64(time.Hour))
}

func (s *Service) record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) {
	if s.recorder != nil {
		_ = s.recorder.Record(ctx, actor, action, meta)
	}
}

func known(name string) bool {
	switch name {
	case domain.SettingCompany, domain.SettingReservation, domain.SettingSystem:
		return true
	}
	return false
}

// numeric tolerates the types a JSON round-trip can produce.
func numeric(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
