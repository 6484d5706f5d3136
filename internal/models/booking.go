package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid              PaymentStatus = "unpaid"
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentVerified            PaymentStatus = "verified"
	PaymentRejected            PaymentStatus = "rejected"
)

// Revenue reports whether a booking in this status counts towards revenue
// and spend totals.
func (s BookingStatus) Revenue() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

type Booking struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"package_id"`
	TouristID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"tourist_id"`
	TravelDate     time.Time     `gorm:"type:date;not null" json:"travel_date"`
	TravelersCount int           `gorm:"not null" json:"travelers_count"`
	TotalPrice     float64       `gorm:"type:numeric(12,2);not null" json:"total_price"`
	Status         BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus  PaymentStatus `gorm:"type:varchar(30);not null;default:'unpaid';index" json:"payment_status"`
	HasReviewed    bool          `gorm:"not null;default:false" json:"has_reviewed"`

	PaymentProofURL        *string    `json:"payment_proof_url,omitempty"`
	PaymentProofUploadedAt *time.Time `json:"payment_proof_uploaded_at,omitempty"`
	PaymentVerifiedAt      *time.Time `json:"payment_verified_at,omitempty"`
	PaymentRejectionReason *string    `gorm:"type:text" json:"payment_rejection_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Package *Package `gorm:"foreignKey:PackageID" json:"package,omitempty"`
	Tourist *User    `gorm:"foreignKey:TouristID" json:"tourist,omitempty"`
}
