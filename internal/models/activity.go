package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog records auditable portal events: exam lifecycle changes,
// assignments, submissions and manual grade overrides.
type ActivityLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	ActorID   uint              `gorm:"not null" json:"actor_id"`
	ActorRole Role              `gorm:"size:20;not null" json:"actor_role"`
	Action    string            `gorm:"size:64;not null" json:"action"`
	EntityID  *uint             `json:"entity_id"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}
