package service

import (
	"time"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/google/uuid"
)

const (
	EventBookingCreated          = "booking.created"
	EventBookingPaymentSubmitted = "booking.payment_submitted"
	EventBookingPaymentVerified  = "booking.payment_verified"
	EventBookingPaymentRejected  = "booking.payment_rejected"
	EventBookingCompleted        = "booking.completed"
	EventBookingCancelled        = "booking.cancelled"
	EventReviewCreated           = "review.created"
)

type BookingEvent struct {
	BookingID     uuid.UUID            `json:"bookingId"`
	PackageID     uuid.UUID            `json:"packageId"`
	TouristID     uuid.UUID            `json:"touristId"`
	Status        models.BookingStatus `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	Reason        string               `json:"reason,omitempty"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

func newBookingEvent(b *models.Booking, at time.Time) BookingEvent {
	ev := BookingEvent{
		BookingID:     b.ID,
		PackageID:     b.PackageID,
		TouristID:     b.TouristID,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		OccurredAt:    at,
	}
	if b.PaymentRejectionReason != nil {
		ev.Reason = *b.PaymentRejectionReason
	}
	return ev
}

type ReviewEvent struct {
	ReviewID   uuid.UUID `json:"reviewId"`
	PackageID  uuid.UUID `json:"packageId"`
	TouristID  uuid.UUID `json:"touristId"`
	BookingID  uuid.UUID `json:"bookingId"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurredAt"`
}
