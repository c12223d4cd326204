package domain

import "time"

type BungalowStatus string

const (
	BungalowActive      BungalowStatus = "active"
	BungalowInactive    BungalowStatus = "inactive"
	BungalowMaintenance BungalowStatus = "maintenance"
)

type Bungalow struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name" gorm:"size:120;not null"`
	Description   string         `json:"description,omitempty" gorm:"type:text"`
	Capacity      int            `json:"capacity"`
	PricePerNight float64        `json:"price_per_night"`
	Status        BungalowStatus `json:"status" gorm:"size:16;index;default:active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	// Derived count of pending/confirmed/checked_in reservations, recomputed
	// on read. Never persisted.
	ReservationsCount int64 `json:"reservations_count" gorm:"-"`
}
