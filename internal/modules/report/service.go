package report

import (
	"context"
	"errors"
	"time"

	"bungalowpark/internal/domain"
)

var ErrInvalidWindow = errors.New("invalid report window")

type ReservationReader interface {
	ListTouchingWindow(ctx context.Context, from, to time.Time) ([]domain.Reservation, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	RevenueTotals(ctx context.Context) (collected, outstanding float64, err error)
}

type BungalowCounter interface {
	CountByStatus(ctx context.Context, status domain.BungalowStatus) (int64, error)
}

type Service struct {
	reservations ReservationReader
	bungalows    BungalowCounter
}

func NewService(reservations ReservationReader, bungalows BungalowCounter) *Service {
	return &Service{reservations: reservations, bungalows: bungalows}
}

type Occupancy struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	Nights          int     `json:"nights"`
	ActiveBungalows int64   `json:"active_bungalows"`
	AvailableNights int64   `json:"available_nights"`
	OccupiedNights  int64   `json:"occupied_nights"`
	OccupancyRate   float64 `json:"occupancy_rate"`
}

// Occupancy reports booked bungalow-nights over the window as a share of the
// nights the active fleet could have sold. Stays are clipped to the window so
// a reservation straddling its edges only counts the nights inside it.
// Cancelled reservations never count.
func (s *Service) Occupancy(ctx context.Context, from, to time.Time) (*Occupancy, error) {
	if !to.After(from) {
		return nil, ErrInvalidWindow
	}

	active, err := s.bungalows.CountByStatus(ctx, domain.BungalowActive)
	if err != nil {
		return nil, err
	}

	nights := int(to.Sub(from).Hours() / 24)
	out := &Occupancy{
		From:            from.Format("2006-01-02"),
		To:              to.Format("2006-01-02"),
		Nights:          nights,
		ActiveBungalows: active,
		AvailableNights: active * int64(nights),
	}

	reservations, err := s.reservations.ListTouchingWindow(ctx, from, to)
	if err != nil {
		return nil, err
	}

	for _, res := range reservations {
		if res.Status == domain.ReservationCancelled {
			continue
		}
		out.OccupiedNights += clippedNights(res.CheckIn, res.CheckOut, from, to)
	}

	if out.AvailableNights > 0 {
		out.OccupancyRate = domain.RoundMoney(float64(out.OccupiedNights) / float64(out.AvailableNights) * 100)
	}
	return out, nil
}

type Summary struct {
	Reservations       map[string]int64 `json:"reservations"`
	RevenueCollected   float64          `json:"revenue_collected"`
	RevenueOutstanding float64          `json:"revenue_outstanding"`
	ActiveBungalows    int64            `json:"active_bungalows"`
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	counts, err := s.reservations.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	collected, outstanding, err := s.reservations.RevenueTotals(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.bungalows.CountByStatus(ctx, domain.BungalowActive)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Reservations:       counts,
		RevenueCollected:   collected,
		RevenueOutstanding: outstanding,
		ActiveBungalows:    active,
	}, nil
}

func clippedNights(checkIn, checkOut, from, to time.Time) int64 {
	if checkIn.Before(from) {
		checkIn = from
	}
	if checkOut.After(to) {
		checkOut = to
	}
	if !checkOut.After(checkIn) {
		return 0
	}
	return int64(checkOut.Sub(checkIn).Hours() / 24)
}
