package dto

import "github.com/daniel-got/uas-paw-kelompok-6/internal/service"

type CreateBookingRequest struct {
	PackageID      string  `json:"packageId"`
	TravelDate     string  `json:"travelDate"`
	TravelersCount int     `json:"travelersCount"`
	TotalPrice     float64 `json:"totalPrice"`
}

func (r CreateBookingRequest) ToInput() service.CreateBookingInput {
	return service.CreateBookingInput{
		PackageID:      r.PackageID,
		TravelDate:     r.TravelDate,
		TravelersCount: r.TravelersCount,
		TotalPrice:     r.TotalPrice,
	}
}

type RejectPaymentRequest struct {
	Reason string `json:"reason" form:"reason"`
}

// CreateDestinationRequest takes the photo as photo_url; photoUrl is accepted
// as an alias.
type CreateDestinationRequest struct {
	Name          string `json:"name" form:"name"`
	Description   string `json:"description" form:"description"`
	PhotoURL      string `json:"photo_url" form:"photo_url"`
	PhotoURLAlias string `json:"photoUrl" form:"photoUrl"`
	Country       string `json:"country" form:"country"`
}

func (r CreateDestinationRequest) ToInput() service.CreateDestinationInput {
	photo := r.PhotoURL
	if photo == "" {
		photo = r.PhotoURLAlias
	}
	return service.CreateDestinationInput{
		Name:        r.Name,
		Description: r.Description,
		PhotoURL:    photo,
		Country:     r.Country,
	}
}

// CreatePackageRequest binds from JSON or from multipart form fields. In the
// multipart case image files arrive separately under the same "images" key.
type CreatePackageRequest struct {
	DestinationID string   `json:"destinationId" form:"destinationId"`
	Name          string   `json:"name" form:"name"`
	Duration      int      `json:"duration" form:"duration"`
	Price         float64  `json:"price" form:"price"`
	Itinerary     string   `json:"itinerary" form:"itinerary"`
	MaxTravelers  int      `json:"maxTravelers" form:"maxTravelers"`
	ContactPhone  string   `json:"contactPhone" form:"contactPhone"`
	Images        []string `json:"images" form:"images"`
}

func (r CreatePackageRequest) ToInput() service.CreatePackageInput {
	return service.CreatePackageInput{
		DestinationID: r.DestinationID,
		Name:          r.Name,
		Duration:      r.Duration,
		Price:         r.Price,
		Itinerary:     r.Itinerary,
		MaxTravelers:  r.MaxTravelers,
		ContactPhone:  r.ContactPhone,
		Images:        r.Images,
	}
}

type CreateReviewRequest struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (r CreateReviewRequest) ToInput() service.CreateReviewInput {
	return service.CreateReviewInput{
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}
