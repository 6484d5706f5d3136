//go:build integration

package integration

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/daniel-got/uas-paw-kelompok-6/pkg/filestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type services struct {
	bookings  service.BookingService
	catalog   service.CatalogService
	reviews   service.ReviewService
	analytics service.AnalyticsService
	files     *filestore.Store
}

func newServices(t *testing.T) services {
	t.Helper()
	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	tx := repository.NewTransactor(testDB)
	destinationRepo := repository.NewDestinationRepository(testDB)
	packageRepo := repository.NewPackageRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	return services{
		bookings:  service.NewBookingService(tx, bookingRepo, packageRepo, files, nil),
		catalog:   service.NewCatalogService(destinationRepo, packageRepo, files),
		reviews:   service.NewReviewService(tx, reviewRepo, bookingRepo, nil),
		analytics: service.NewAnalyticsService(bookingRepo, packageRepo, reviewRepo, nil),
		files:     files,
	}
}

func newUser(t *testing.T, role models.Role, name string) service.Caller {
	t.Helper()
	user := &models.User{
		ID:    uuid.New(),
		Role:  role,
		Name:  name,
		Email: uuid.NewString() + "@example.com",
	}
	require.NoError(t, testDB.Create(user).Error)
	return service.Caller{ID: user.ID, Role: role}
}

func createDestination(t *testing.T, svc services, agent service.Caller, name string) *models.Destination {
	t.Helper()
	dest, err := svc.catalog.CreateDestination(context.Background(), agent, service.CreateDestinationInput{
		Name:        name,
		Description: "Island beaches and temples",
		PhotoURL:    "https://img.example.com/" + name + ".jpg",
		Country:     "Indonesia",
	})
	require.NoError(t, err)
	return dest
}

func createPackage(t *testing.T, svc services, agent service.Caller, dest *models.Destination, name string, price float64) *models.Package {
	t.Helper()
	pkg, err := svc.catalog.CreatePackage(context.Background(), agent, service.CreatePackageInput{
		DestinationID: dest.ID.String(),
		Name:          name,
		Duration:      4,
		Price:         price,
		Itinerary:     "Day 1 arrival, Day 2 tour",
		MaxTravelers:  6,
		ContactPhone:  "+62 811 000 000",
	}, nil)
	require.NoError(t, err)
	return pkg
}

func createBooking(t *testing.T, svc services, tourist service.Caller, pkg *models.Package, price float64) *models.Booking {
	t.Helper()
	b, err := svc.bookings.CreateBooking(context.Background(), tourist, service.CreateBookingInput{
		PackageID:      pkg.ID.String(),
		TravelDate:     time.Now().AddDate(0, 0, 14).Format(time.DateOnly),
		TravelersCount: 2,
		TotalPrice:     price,
	})
	require.NoError(t, err)
	return b
}

func proofUpload(t *testing.T) *service.Upload {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return &service.Upload{Filename: "transfer.png", ContentType: "image/png", Data: buf.Bytes()}
}

// confirmedBooking walks a booking through upload and verification.
func confirmedBooking(t *testing.T, svc services, tourist, agent service.Caller, pkg *models.Package, price float64) *models.Booking {
	t.Helper()
	ctx := context.Background()
	b := createBooking(t, svc, tourist, pkg, price)
	_, err := svc.bookings.UploadPaymentProof(ctx, tourist, b.ID, proofUpload(t))
	require.NoError(t, err)
	b, err = svc.bookings.VerifyPayment(ctx, agent, b.ID)
	require.NoError(t, err)
	return b
}
