package domain

import "time"

// Setting names. Each is a single named record holding a JSON document,
// created by an explicit initialization step at boot.
const (
	SettingCompany     = "company"
	SettingReservation = "reservation"
	SettingSystem      = "system"
)

type Setting struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name" gorm:"size:32;uniqueIndex;not null"`
	Data      map[string]any `json:"data" gorm:"serializer:json"`
	UpdatedBy string         `json:"updated_by,omitempty" gorm:"size:160"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
