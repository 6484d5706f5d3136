package dto

import (
	"time"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps a collection as {"data": [...]}.
type ListResponse[T any] struct {
	Data []T `json:"data"`
}

type PackageSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Images []string  `json:"images,omitempty"`
}

type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

type BookingResponse struct {
	ID                     uuid.UUID            `json:"id"`
	PackageID              uuid.UUID            `json:"packageId"`
	TouristID              uuid.UUID            `json:"touristId"`
	TravelDate             string               `json:"travelDate"`
	TravelersCount         int                  `json:"travelersCount"`
	TotalPrice             float64              `json:"totalPrice"`
	Status                 models.BookingStatus `json:"status"`
	PaymentStatus          models.PaymentStatus `json:"paymentStatus"`
	HasReviewed            bool                 `json:"hasReviewed"`
	PaymentProofURL        *string              `json:"paymentProofUrl"`
	PaymentProofUploadedAt *time.Time           `json:"paymentProofUploadedAt"`
	PaymentVerifiedAt      *time.Time           `json:"paymentVerifiedAt"`
	PaymentRejectionReason *string              `json:"paymentRejectionReason"`
	CreatedAt              time.Time            `json:"createdAt"`
	UpdatedAt              time.Time            `json:"updatedAt"`
	CompletedAt            *time.Time           `json:"completedAt"`
	Package                *PackageSummary      `json:"package,omitempty"`
	Tourist                *UserSummary         `json:"tourist,omitempty"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:                     b.ID,
		PackageID:              b.PackageID,
		TouristID:              b.TouristID,
		TravelDate:             b.TravelDate.Format(time.DateOnly),
		TravelersCount:         b.TravelersCount,
		TotalPrice:             b.TotalPrice,
		Status:                 b.Status,
		PaymentStatus:          b.PaymentStatus,
		HasReviewed:            b.HasReviewed,
		PaymentProofURL:        b.PaymentProofURL,
		PaymentProofUploadedAt: b.PaymentProofUploadedAt,
		PaymentVerifiedAt:      b.PaymentVerifiedAt,
		PaymentRejectionReason: b.PaymentRejectionReason,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
		CompletedAt:            b.CompletedAt,
	}
	if b.Package != nil {
		resp.Package = &PackageSummary{ID: b.Package.ID, Name: b.Package.Name}
		if len(b.Package.Images) > 0 {
			resp.Package.Images = []string{b.Package.Images[0]}
		}
	}
	if b.Tourist != nil {
		resp.Tourist = &UserSummary{ID: b.Tourist.ID, Name: b.Tourist.Name, Email: b.Tourist.Email}
	}
	return resp
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i])
	}
	return resp
}

type DestinationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoURL    string    `json:"photoUrl"`
	Country     string    `json:"country"`
}

func ToDestinationResponse(d *models.Destination) DestinationResponse {
	return DestinationResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		PhotoURL:    d.PhotoURL,
		Country:     d.Country,
	}
}

func ToDestinationResponses(destinations []models.Destination) []DestinationResponse {
	resp := make([]DestinationResponse, len(destinations))
	for i := range destinations {
		resp[i] = ToDestinationResponse(&destinations[i])
	}
	return resp
}

type PackageResponse struct {
	ID            uuid.UUID            `json:"id"`
	AgentID       uuid.UUID            `json:"agentId"`
	DestinationID uuid.UUID            `json:"destinationId"`
	Name          string               `json:"name"`
	Duration      int                  `json:"duration"`
	Price         float64              `json:"price"`
	Itinerary     string               `json:"itinerary"`
	MaxTravelers  int                  `json:"maxTravelers"`
	ContactPhone  string               `json:"contactPhone"`
	Images        []string             `json:"images"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	Destination   *DestinationResponse `json:"destination,omitempty"`
}

func ToPackageResponse(p *models.Package) PackageResponse {
	resp := PackageResponse{
		ID:            p.ID,
		AgentID:       p.AgentID,
		DestinationID: p.DestinationID,
		Name:          p.Name,
		Duration:      p.Duration,
		Price:         p.Price,
		Itinerary:     p.Itinerary,
		MaxTravelers:  p.MaxTravelers,
		ContactPhone:  p.ContactPhone,
		Images:        []string(p.Images),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if p.Destination != nil {
		d := ToDestinationResponse(p.Destination)
		resp.Destination = &d
	}
	return resp
}

func ToPackageResponses(packages []models.Package) []PackageResponse {
	resp := make([]PackageResponse, len(packages))
	for i := range packages {
		resp[i] = ToPackageResponse(&packages[i])
	}
	return resp
}

type ReviewResponse struct {
	ID        uuid.UUID       `json:"id"`
	PackageID uuid.UUID       `json:"packageId"`
	TouristID uuid.UUID       `json:"touristId"`
	BookingID *uuid.UUID      `json:"bookingId"`
	Rating    int             `json:"rating"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"createdAt"`
	Tourist   *UserSummary    `json:"tourist,omitempty"`
	Package   *PackageSummary `json:"package,omitempty"`
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		PackageID: r.PackageID,
		TouristID: r.TouristID,
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.Tourist != nil {
		resp.Tourist = &UserSummary{ID: r.Tourist.ID, Name: r.Tourist.Name}
	}
	if r.Package != nil {
		resp.Package = &PackageSummary{ID: r.Package.ID, Name: r.Package.Name}
	}
	return resp
}

func ToReviewResponses(reviews []models.Review) []ReviewResponse {
	resp := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		resp[i] = ToReviewResponse(&reviews[i])
	}
	return resp
}
