package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bungalowpark/internal/domain"
	"bungalowpark/internal/repository"
)

const (
	defaultConfirmationTTL = 24 * time.Hour
	expiredReason          = "confirmation window expired"
	dateLayout             = "2006-01-02"
)

type Service struct {
	reservations ReservationRepository
	bungalows    BungalowReader
	customers    CustomerReader
	services     ServiceReader
	policy       PolicyProvider
	recorder     ActivityRecorder
}

func NewService(
	reservations ReservationRepository,
	bungalows BungalowReader,
	customers CustomerReader,
	services ServiceReader,
	policy PolicyProvider,
	recorder ActivityRecorder,
) *Service {
	return &Service{
		reservations: reservations,
		bungalows:    bungalows,
		customers:    customers,
		services:     services,
		policy:       policy,
		recorder:     recorder,
	}
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateReservationRequest) (*domain.Reservation, error) {
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if checkIn.Before(today()) {
		return nil, ErrPastCheckIn
	}

	if _, err := s.customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	bungalow, err := s.bungalows.GetByID(ctx, req.BungalowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBungalowNotFound
		}
		return nil, err
	}

	overlap, err := s.reservations.HasOverlap(ctx, req.BungalowID, 0, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrDatesOverlap
	}

	now := time.Now().UTC()
	code, confirmation, err := s.generateCodes(ctx, now)
	if err != nil {
		return nil, err
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	total := req.TotalPrice
	if total <= 0 {
		total = domain.RoundMoney(float64(nights) * bungalow.PricePerNight)
	}

	status := domain.ReservationPending
	if req.Status != "" {
		status = domain.ReservationStatus(req.Status)
	}

	expires := now.Add(s.confirmationTTL(ctx))
	r := &domain.Reservation{
		Code:                  code,
		CustomerID:            req.CustomerID,
		BungalowID:            req.BungalowID,
		CheckIn:               checkIn,
		CheckOut:              checkOut,
		GuestCount:            req.GuestCount,
		TotalPrice:            total,
		PaymentAmount:         req.PaymentAmount,
		Status:                status,
		Notes:                 req.Notes,
		PaymentHistory:        []domain.PaymentEntry{},
		ExtraServices:         []domain.ServiceLine{},
		ConfirmationCode:      confirmation,
		ConfirmationExpiresAt: &expires,
	}
	r.RecomputeAmounts()

	if err := s.reservations.Create(ctx, r); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrCodeCollision
		}
		return nil, err
	}

	s.record(ctx, actor, "reservation.created", map[string]any{
		"reservation_id": r.ID,
		"code":           r.Code,
		"customer_id":    r.CustomerID,
		"bungalow_id":    r.BungalowID,
	})
	return r, nil
}

func (s *Service) List(ctx context.Context, f repository.ReservationFilters) ([]domain.Reservation, int64, error) {
	return s.reservations.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

// Update applies a partial update. remaining_amount is recomputed whenever
// price or payment fields are present.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req UpdateReservationRequest) (*domain.Reservation, error) {
	res, err := s.mutate(ctx, id, func(r *domain.Reservation) error {
		if req.CheckIn != nil || req.CheckOut != nil {
			in, out := r.CheckIn, r.CheckOut
			if req.CheckIn != nil {
				v, err := time.Parse(dateLayout, *req.CheckIn)
				if err != nil {
					return ErrInvalidDates
				}
				in = v
			}
			if req.CheckOut != nil {
				v, err := time.Parse(dateLayout, *req.CheckOut)
				if err != nil {
					return ErrInvalidDates
				}
				out = v
			}
			if !out.After(in) {
				return ErrInvalidDates
			}
			r.CheckIn, r.CheckOut = in, out
		}
		if req.GuestCount != nil {
			r.GuestCount = *req.GuestCount
		}
		if req.Notes != nil {
			r.Notes = *req.Notes
		}
		if req.Status != nil {
			r.Status = domain.ReservationStatus(*req.Status)
		}
		if req.TotalPrice != nil {
			r.TotalPrice = *req.TotalPrice
		}
		if req.PaymentAmount != nil {
			r.PaymentAmount = *req.PaymentAmount
		}
		r.RecomputeAmounts()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "reservation.updated", map[string]any{
		"reservation_id": res.ID,
		"code":           res.Code,
	})
	return res, nil
}

func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.record(ctx, actor, "reservation.deleted", map[string]any{"reservation_id": id})
	return nil
}

// AddPayment appends a payment-history entry and advances the cumulative
// payment. Rejected without mutating state when the new cumulative amount
// would exceed the total price.
func (s *Service) AddPayment(ctx context.Context, actor domain.Actor, id int64, req AddPaymentRequest) (*domain.Reservation, error) {
	res, err := s.mutate(ctx, id, func(r *domain.Reservation) error {
		newTotal := domain.RoundMoney(r.PaymentAmount + req.Amount)
		if newTotal > r.TotalPrice {
			return ErrPaymentExceedsTotal
		}

		r.PaymentHistory = append(r.PaymentHistory, domain.PaymentEntry{
			ID:        uuid.NewString(),
			Amount:    domain.RoundMoney(req.Amount),
			Method:    req.Method,
			PaidAt:    req.PaidAt,
			Notes:     req.Notes,
			ActorID:   actor.ID,
			ActorName: actor.Name,
			CreatedAt: time.Now().UTC(),
		})
		r.PaymentAmount = newTotal
		r.RecomputeAmounts()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "reservation.payment_added", map[string]any{
		"reservation_id": res.ID,
		"code":           res.Code,
		"amount":         req.Amount,
		"method":         req.Method,
	})
	return res, nil
}

// AddService attaches an extra-service line and raises the total accordingly.
func (s *Service) AddService(ctx context.Context, actor domain.Actor, id int64, req AddServiceRequest) (*domain.Reservation, error) {
	svc, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	res, err := s.mutate(ctx, id, func(r *domain.Reservation) error {
		qty := req.Quantity
		if qty <= 0 {
			if svc.Pricing == domain.PricingPerPerson {
				qty = r.GuestCount
			} else {
				qty = 1
			}
		}

		amount := svc.ChargeFor(qty, r.Nights())
		r.ExtraServices = append(r.ExtraServices, domain.ServiceLine{
			ID:        uuid.NewString(),
			ServiceID: svc.ID,
			Name:      svc.Name,
			Pricing:   string(svc.Pricing),
			UnitPrice: svc.Price,
			Quantity:  qty,
			Amount:    amount,
			AddedAt:   time.Now().UTC(),
		})
		r.TotalPrice = domain.RoundMoney(r.TotalPrice + amount)
		r.RecomputeAmounts()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "reservation.service_added", map[string]any{
		"reservation_id": res.ID,
		"code":           res.Code,
		"service_id":     svc.ID,
		"service_name":   svc.Name,
	})
	return res, nil
}

// RemoveService detaches a line and lowers the total by the stored amount.
func (s *Service) RemoveService(ctx context.Context, actor domain.Actor, id int64, req RemoveServiceRequest) (*domain.Reservation, error) {
	var removed domain.ServiceLine
	res, err := s.mutate(ctx, id, func(r *domain.Reservation) error {
		idx := -1
		if req.EntryID != "" {
			for i, l := range r.ExtraServices {
				if l.ID == req.EntryID {
					idx = i
					break
				}
			}
		} else if req.Index != nil {
			idx = *req.Index
		}
		if idx < 0 || idx >= len(r.ExtraServices) {
			return ErrServiceLineNotFound
		}

		removed = r.ExtraServices[idx]
		r.ExtraServices = append(r.ExtraServices[:idx], r.ExtraServices[idx+1:]...)
		r.TotalPrice = domain.RoundMoney(r.TotalPrice - removed.Amount)
		r.RecomputeAmounts()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "reservation.service_removed", map[string]any{
		"reservation_id": res.ID,
		"code":           res.Code,
		"service_id":     removed.ServiceID,
		"amount":         removed.Amount,
	})
	return res, nil
}

// Delay moves the stay to a new date range after checking for conflicts, then
// recomputes the total as nights × nightly rate plus the preserved
// extra-service charges.
func (s *Service) Delay(ctx context.Context, actor domain.Actor, id int64, req DelayRequest) (*domain.Reservation, error) {
	checkIn, checkOut, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if checkIn.Before(today()) {
		return nil, ErrPastCheckIn
	}

	var oldIn, oldOut time.Time
	res, err := s.mutate(ctx, id, func(r *domain.Reservation) error {
		if r.Status == domain.ReservationCancelled || r.Status == domain.ReservationCompleted {
			return ErrInvalidStatusTransition
		}

		overlap, err := s.reservations.HasOverlap(ctx, r.BungalowID, r.ID, checkIn, checkOut)
		if err != nil {
			return err
		}
		if overlap {
			return ErrDatesOverlap
		}

		bungalow, err := s.bungalows.GetByID(ctx, r.BungalowID)
		if err != nil {
			return err
		}

		oldIn, oldOut = r.CheckIn, r.CheckOut
		r.CheckIn, r.CheckOut = checkIn, checkOut

		nights := r.Nights()
		r.TotalPrice = domain.RoundMoney(float64(nights)*bungalow.PricePerNight + r.ServicesTotal())

		note := fmt.Sprintf("Delayed: was %s to %s", oldIn.Format(dateLayout), oldOut.Format(dateLayout))
		if req.Reason != "" {
			note += " (" + req.Reason + ")"
		}
		if r.Notes != "" {
			r.Notes += "\n"
		}
		r.Notes += note

		now := time.Now().UTC()
		r.DelayedAt = &now
		r.RecomputeAmounts()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "reservation.delayed", map[string]any{
		"reservation_id": res.ID,
		"code":           res.Code,
		"old_check_in":   oldIn.Format(dateLayout),
		"old_check_out":  oldOut.Format(dateLayout),
		"new_check_in":   req.CheckIn,
		"new_check_out":  req.CheckOut,
		"reason":         req.Reason,
	})
	return res, nil
}

// Cancel is terminal and intentionally asymmetric: confirmed reservations
// cannot be cancelled through this path.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64, reason string) (*domain.Reservation, error) {
	res, err := s.mutate(ctx, id, func(r *domain.Reservation) error {
		if r.Status == domain.ReservationCancelled {
			return ErrAlreadyCancelled
		}
		if r.Status == domain.ReservationConfirmed {
			return ErrInvalidStatusTransition
		}

		now := time.Now().UTC()
		r.Status = domain.ReservationCancelled
		r.CancelledAt = &now
		if reason == "" {
			reason = expiredReason
		}
		r.CancellationReason = reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "reservation.cancelled", map[string]any{
		"reservation_id": res.ID,
		"code":           res.Code,
		"reason":         res.CancellationReason,
	})
	return res, nil
}

// ConfirmationView serves the public confirmation page lookup.
func (s *Service) ConfirmationView(ctx context.Context, code string) (*domain.Reservation, error) {
	r, err := s.reservations.GetByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	// Confirmed reservations stay viewable after the window closes.
	if r.ConfirmedAt == nil && !r.IsConfirmable(time.Now().UTC()) {
		return nil, ErrConfirmationExpired
	}
	return r, nil
}

// Confirm transitions to confirmed exactly once, requiring an unexpired code
// and prior terms acceptance.
func (s *Service) Confirm(ctx context.Context, actor domain.Actor, code string, termsAccepted bool) (*domain.Reservation, error) {
	existing, err := s.reservations.GetByConfirmationCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	res, err := s.mutate(ctx, existing.ID, func(r *domain.Reservation) error {
		if r.ConfirmedAt != nil || r.Status == domain.ReservationConfirmed {
			return ErrAlreadyConfirmed
		}
		if r.Status == domain.ReservationCancelled {
			return ErrInvalidStatusTransition
		}
		if !r.IsConfirmable(time.Now().UTC()) {
			return ErrConfirmationExpired
		}
		if !termsAccepted {
			return ErrTermsNotAccepted
		}

		now := time.Now().UTC()
		r.Status = domain.ReservationConfirmed
		r.ConfirmedAt = &now
		r.TermsAccepted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actor, "reservation.confirmed", map[string]any{
		"reservation_id": res.ID,
		"code":           res.Code,
	})
	return res, nil
}

// ExpireOverdue cancels pending reservations whose confirmation window lapsed
// before now. Returns the number of reservations swept.
func (s *Service) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	rows, err := s.reservations.ListExpiredPending(ctx, now)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, r := range rows {
		if _, err := s.Cancel(ctx, domain.SystemActor(), r.ID, expiredReason); err != nil {
			// Already cancelled by a concurrent sweep; skip.
			continue
		}
		count++
	}
	return count, nil
}

func (s *Service) confirmationTTL(ctx context.Context) time.Duration {
	if s.policy != nil {
		if ttl := s.policy.ConfirmationTTL(ctx); ttl > 0 {
			return ttl
		}
	}
	return defaultConfirmationTTL
}

func (s *Service) mutate(ctx context.Context, id int64, fn func(*domain.Reservation) error) (*domain.Reservation, error) {
	res, err := s.reservations.Mutate(ctx, id, fn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *Service) record(ctx context.Context, actor domain.Actor, action string, meta map[string]any) {
	if s.recorder != nil {
		_ = s.recorder.Record(ctx, actor, action, meta)
	}
}

func parseStay(inStr, outStr string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(dateLayout, inStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	checkOut, err = time.Parse(dateLayout, outStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	return checkIn, checkOut, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
