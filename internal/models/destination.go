package models

import (
	"time"

	"github.com/google/uuid"
)

type Destination struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_destination_name_country" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PhotoURL    string    `json:"photo_url"`
	Country     string    `gorm:"not null;index;uniqueIndex:idx_destination_name_country" json:"country"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
