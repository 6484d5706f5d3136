package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Package struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	AgentID       uuid.UUID                   `gorm:"type:uuid;not null;index;uniqueIndex:idx_package_agent_name" json:"agent_id"`
	DestinationID uuid.UUID                   `gorm:"type:uuid;not null;index" json:"destination_id"`
	Name          string                      `gorm:"not null;uniqueIndex:idx_package_agent_name" json:"name"`
	Duration      int                         `gorm:"not null" json:"duration"`
	Price         float64                     `gorm:"type:numeric(12,2);not null;index" json:"price"`
	Itinerary     string                      `gorm:"type:text" json:"itinerary"`
	MaxTravelers  int                         `gorm:"not null" json:"max_travelers"`
	ContactPhone  string                      `json:"contact_phone"`
	Images        datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"images"`
	CreatedAt     time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`

	Destination *Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}
