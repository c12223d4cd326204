package reservation

import (
	"context"
	"time"

	"bungalowpark/internal/domain"
	"bungalowpark/internal/repository"
)

// ReservationRepository is the persistence surface the service needs.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByConfirmationCode(ctx context.Context, code string) (*domain.Reservation, error)
	List(ctx context.Context, f repository.ReservationFilters) ([]domain.Reservation, int64, error)
	Delete(ctx context.Context, id int64) error
	CodeExists(ctx context.Context, code string) (bool, error)
	ConfirmationCodeExists(ctx context.Context, code string) (bool, error)
	HasOverlap(ctx context.Context, bungalowID, excludeID int64, checkIn, checkOut time.Time) (bool, error)
	Mutate(ctx context.Context, id int64, fn func(*domain.Reservation) error) (*domain.Reservation, error)
	ListExpiredPending(ctx context.Context, now time.Time) ([]domain.Reservation, error)
}

type BungalowReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Bungalow, error)
}

type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.ExtraService, error)
}

// PolicyProvider exposes the runtime-tunable confirmation window. Nil is
// allowed; the service falls back to the default.
type PolicyProvider interface {
	ConfirmationTTL(ctx context.Context) time.Duration
}

// ActivityRecorder writes audit rows. Nil is allowed; recording errors never
// fail the business operation.
type ActivityRecorder interface {
	Record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) error
}
