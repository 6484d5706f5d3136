package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID uuid.UUID  `gorm:"type:uuid;not null;index" json:"package_id"`
	TouristID uuid.UUID  `gorm:"type:uuid;not null;index" json:"tourist_id"`
	BookingID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"booking_id,omitempty"`
	Rating    int        `gorm:"not null" json:"rating"`
	Comment   string     `gorm:"type:text" json:"comment"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`

	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	Tourist *User    `gorm:"foreignKey:TouristID" json:"tourist,omitempty"`
	Booking *Booking `gorm:"foreignKey:BookingID" json:"-"`
}
