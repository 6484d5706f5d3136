package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleTourist Role = "tourist"
	RoleAgent   Role = "agent"
)

func (r Role) Valid() bool {
	return r == RoleTourist || r == RoleAgent
}

// User rows are owned by the auth service; this service only reads them to
// embed name/email summaries.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
