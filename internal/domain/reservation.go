package domain

import (
	"math"
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCheckedIn ReservationStatus = "checked_in"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentEntry is one line of the reservation's payment history. Entries are
// append-only and carry a generated id so they can be referenced stably.
type PaymentEntry struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	PaidAt    string    `json:"paid_at"`
	Notes     string    `json:"notes,omitempty"`
	ActorID   int64     `json:"actor_id"`
	ActorName string    `json:"actor_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceLine is an extra-service charge attached to a reservation. Amount is
// the computed contribution at the time the line was added; later price-list
// changes do not retroactively reprice it.
type ServiceLine struct {
	ID        string    `json:"id"`
	ServiceID int64     `json:"service_id"`
	Name      string    `json:"name"`
	Pricing   string    `json:"pricing"`
	UnitPrice float64   `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Amount    float64   `json:"amount"`
	AddedAt   time.Time `json:"added_at"`
}

type Reservation struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code" gorm:"size:16;uniqueIndex"`
	CustomerID int64     `json:"customer_id" gorm:"index;not null"`
	BungalowID int64     `json:"bungalow_id" gorm:"index;not null"`
	CheckIn    time.Time `json:"check_in_date"`
	CheckOut   time.Time `json:"check_out_date"`
	GuestCount int       `json:"guest_count"`

	TotalPrice      float64 `json:"total_price"`
	PaymentAmount   float64 `json:"payment_amount"`
	RemainingAmount float64 `json:"remaining_amount"`

	Status        ReservationStatus `json:"status" gorm:"size:16;index;default:pending"`
	PaymentStatus PaymentStatus     `json:"payment_status" gorm:"size:16;default:unpaid"`
	Notes         string            `json:"notes,omitempty" gorm:"type:text"`

	PaymentHistory []PaymentEntry `json:"payment_history" gorm:"serializer:json"`
	ExtraServices  []ServiceLine  `json:"extra_services" gorm:"serializer:json"`

	ConfirmationCode      string     `json:"confirmation_code" gorm:"size:12;uniqueIndex"`
	ConfirmationExpiresAt *time.Time `json:"confirmation_expires_at,omitempty"`
	TermsAccepted         bool       `json:"terms_accepted"`
	ConfirmedAt           *time.Time `json:"confirmed_at,omitempty"`

	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	DelayedAt          *time.Time `json:"delayed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	Bungalow *Bungalow `json:"bungalow,omitempty" gorm:"foreignKey:BungalowID;constraint:OnDelete:CASCADE"`
}

// Nights returns the stay length in whole nights.
func (r *Reservation) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// ServicesTotal sums the extra-service line amounts.
func (r *Reservation) ServicesTotal() float64 {
	var sum float64
	for _, l := range r.ExtraServices {
		sum += l.Amount
	}
	return RoundMoney(sum)
}

// RecomputeAmounts restores the remaining_amount invariant and derives the
// payment status from the cumulative payment. Called after every mutation
// touching total_price or payment_amount. A manually set "refunded" status is
// not preserved across recomputation.
func (r *Reservation) RecomputeAmounts() {
	r.TotalPrice = RoundMoney(r.TotalPrice)
	r.PaymentAmount = RoundMoney(r.PaymentAmount)
	r.RemainingAmount = RoundMoney(r.TotalPrice - r.PaymentAmount)

	switch {
	case r.PaymentAmount <= 0:
		r.PaymentStatus = PaymentUnpaid
	case r.PaymentAmount >= r.TotalPrice:
		r.PaymentStatus = PaymentPaid
	default:
		r.PaymentStatus = PaymentPartial
	}
}

// IsConfirmable reports whether the confirmation window is still open.
func (r *Reservation) IsConfirmable(now time.Time) bool {
	return r.ConfirmationExpiresAt != nil && now.Before(*r.ConfirmationExpiresAt)
}

// RoundMoney rounds to 2 decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
