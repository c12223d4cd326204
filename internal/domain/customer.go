package domain

import "time"

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
	CustomerBanned   CustomerStatus = "banned"
)

type Customer struct {
	ID        int64          `json:"id"`
	FullName  string         `json:"full_name" gorm:"size:160;not null"`
	Email     string         `json:"email" gorm:"size:160;index"`
	Phone     string         `json:"phone" gorm:"size:32"`
	IDNumber  string         `json:"id_number,omitempty" gorm:"size:64"`
	Address   string         `json:"address,omitempty" gorm:"type:text"`
	Notes     string         `json:"notes,omitempty" gorm:"type:text"`
	Status    CustomerStatus `json:"status" gorm:"size:16;index;default:active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// Aggregates recomputed at read time in the listing endpoint, never stored.
	ReservationsCount int64   `json:"reservations_count" gorm:"-"`
	TotalSpent        float64 `json:"total_spent" gorm:"-"`
}
