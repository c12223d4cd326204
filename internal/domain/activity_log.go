package domain

import "time"

// ActivityLog is an append-only audit row. Write-only from the application's
// perspective; read back via paginated listing.
type ActivityLog struct {
	ID        int64          `json:"id"`
	ActorID   int64          `json:"actor_id" gorm:"index"`
	ActorName string         `json:"actor_name" gorm:"size:160"`
	Action    string         `json:"action" gorm:"size:64;index;not null"`
	Status    string         `json:"status" gorm:"size:16;default:success"`
	IPAddress string         `json:"ip_address,omitempty" gorm:"size:64"`
	Metadata  map[string]any `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
}
