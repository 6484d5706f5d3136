package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/middleware"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn    func(ctx context.Context, caller service.Caller, in service.CreateBookingInput) (*models.Booking, error)
	getFn       func(ctx context.Context, caller service.Caller, id uuid.UUID) (*models.Booking, error)
	listFn      func(ctx context.Context, caller service.Caller, f service.BookingListFilter) ([]models.Booking, error)
	byTouristFn func(ctx context.Context, caller service.Caller, touristID uuid.UUID) ([]models.Booking, error)
	byPackageFn func(ctx context.Context, caller service.Caller, packageID uuid.UUID) ([]models.Booking, error)
	pendingFn   func(ctx context.Context, caller service.Caller) ([]models.Booking, error)
	uploadFn    func(ctx context.Context, caller service.Caller, id uuid.UUID, file *service.Upload) (*models.Booking, error)
	verifyFn    func(ctx context.Context, caller service.Caller, id uuid.UUID) (*models.Booking, error)
	rejectFn    func(ctx context.Context, caller service.Caller, id uuid.UUID, reason string) (*models.Booking, error)
	completeFn  func(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	cancelFn    func(ctx context.Context, id uuid.UUID, reason string) (*models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, caller service.Caller, in service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, caller, in)
}
func (m *mockBookingService) GetBooking(ctx context.Context, caller service.Caller, id uuid.UUID) (*models.Booking, error) {
	return m.getFn(ctx, caller, id)
}
func (m *mockBookingService) ListBookings(ctx context.Context, caller service.Caller, f service.BookingListFilter) ([]models.Booking, error) {
	return m.listFn(ctx, caller, f)
}
func (m *mockBookingService) ListByTourist(ctx context.Context, caller service.Caller, touristID uuid.UUID) ([]models.Booking, error) {
	return m.byTouristFn(ctx, caller, touristID)
}
func (m *mockBookingService) ListByPackage(ctx context.Context, caller service.Caller, packageID uuid.UUID) ([]models.Booking, error) {
	return m.byPackageFn(ctx, caller, packageID)
}
func (m *mockBookingService) ListPendingVerification(ctx context.Context, caller service.Caller) ([]models.Booking, error) {
	return m.pendingFn(ctx, caller)
}
func (m *mockBookingService) UploadPaymentProof(ctx context.Context, caller service.Caller, id uuid.UUID, file *service.Upload) (*models.Booking, error) {
	return m.uploadFn(ctx, caller, id, file)
}
func (m *mockBookingService) VerifyPayment(ctx context.Context, caller service.Caller, id uuid.UUID) (*models.Booking, error) {
	return m.verifyFn(ctx, caller, id)
}
func (m *mockBookingService) RejectPayment(ctx context.Context, caller service.Caller, id uuid.UUID, reason string) (*models.Booking, error) {
	return m.rejectFn(ctx, caller, id, reason)
}
func (m *mockBookingService) CompleteBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return m.completeFn(ctx, id)
}
func (m *mockBookingService) CancelBooking(ctx context.Context, id uuid.UUID, reason string) (*models.Booking, error) {
	return m.cancelFn(ctx, id, reason)
}

// --- Mock CatalogService ---

type mockCatalogService struct {
	listDestinationsFn  func(ctx context.Context, f repository.DestinationFilter) ([]models.Destination, error)
	getDestinationFn    func(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	createDestinationFn func(ctx context.Context, caller service.Caller, in service.CreateDestinationInput) (*models.Destination, error)
	listPackagesFn      func(ctx context.Context, f service.PackageListFilter) ([]models.Package, error)
	getPackageFn        func(ctx context.Context, id uuid.UUID) (*models.Package, error)
	agentPackagesFn     func(ctx context.Context, agentID uuid.UUID) ([]models.Package, error)
	createPackageFn     func(ctx context.Context, caller service.Caller, in service.CreatePackageInput, uploads []service.Upload) (*models.Package, error)
}

func (m *mockCatalogService) ListDestinations(ctx context.Context, f repository.DestinationFilter) ([]models.Destination, error) {
	return m.listDestinationsFn(ctx, f)
}
func (m *mockCatalogService) GetDestination(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	return m.getDestinationFn(ctx, id)
}
func (m *mockCatalogService) CreateDestination(ctx context.Context, caller service.Caller, in service.CreateDestinationInput) (*models.Destination, error) {
	return m.createDestinationFn(ctx, caller, in)
}
func (m *mockCatalogService) ListPackages(ctx context.Context, f service.PackageListFilter) ([]models.Package, error) {
	return m.listPackagesFn(ctx, f)
}
func (m *mockCatalogService) GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	return m.getPackageFn(ctx, id)
}
func (m *mockCatalogService) ListAgentPackages(ctx context.Context, agentID uuid.UUID) ([]models.Package, error) {
	return m.agentPackagesFn(ctx, agentID)
}
func (m *mockCatalogService) CreatePackage(ctx context.Context, caller service.Caller, in service.CreatePackageInput, uploads []service.Upload) (*models.Package, error) {
	return m.createPackageFn(ctx, caller, in, uploads)
}

// --- Mock ReviewService ---

type mockReviewService struct {
	byPackageFn func(ctx context.Context, packageID uuid.UUID) ([]models.Review, error)
	byTouristFn func(ctx context.Context, caller service.Caller, touristID uuid.UUID) ([]models.Review, error)
	createFn    func(ctx context.Context, caller service.Caller, in service.CreateReviewInput) (*models.Review, error)
}

func (m *mockReviewService) ListByPackage(ctx context.Context, packageID uuid.UUID) ([]models.Review, error) {
	return m.byPackageFn(ctx, packageID)
}
func (m *mockReviewService) ListByTourist(ctx context.Context, caller service.Caller, touristID uuid.UUID) ([]models.Review, error) {
	return m.byTouristFn(ctx, caller, touristID)
}
func (m *mockReviewService) CreateReview(ctx context.Context, caller service.Caller, in service.CreateReviewInput) (*models.Review, error) {
	return m.createFn(ctx, caller, in)
}

// --- Mock AnalyticsService ---

type mockAnalyticsService struct {
	agentStatsFn   func(ctx context.Context, caller service.Caller) (*service.AgentStats, error)
	performanceFn  func(ctx context.Context, caller service.Caller, limit int) ([]service.PackagePerformance, error)
	touristStatsFn func(ctx context.Context, caller service.Caller) (*service.TouristStats, error)
}

func (m *mockAnalyticsService) AgentStats(ctx context.Context, caller service.Caller) (*service.AgentStats, error) {
	return m.agentStatsFn(ctx, caller)
}
func (m *mockAnalyticsService) AgentPackagePerformance(ctx context.Context, caller service.Caller, limit int) ([]service.PackagePerformance, error) {
	return m.performanceFn(ctx, caller, limit)
}
func (m *mockAnalyticsService) TouristStats(ctx context.Context, caller service.Caller) (*service.TouristStats, error) {
	return m.touristStatsFn(ctx, caller)
}

// --- helpers ---

var (
	tourist = service.Caller{ID: uuid.New(), Role: models.RoleTourist}
	agent   = service.Caller{ID: uuid.New(), Role: models.RoleAgent}
)

// newContext builds a handler context for caller. A nil caller leaves the
// request unauthenticated.
func newContext(method, target string, body io.Reader, contentType string, caller *service.Caller) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		middleware.SetCaller(c, *caller)
	}
	return c, rec
}

func httpStatus(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
