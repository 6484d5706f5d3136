package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/metrics"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minLeadDays = 3

type CreateBookingInput struct {
	PackageID      string  `validate:"required"`
	TravelDate     string  `validate:"required"`
	TravelersCount int     `validate:"required"`
	TotalPrice     float64 `validate:"required"`
}

// BookingListFilter holds optional caller-supplied filters. Ids are raw
// strings as received.
type BookingListFilter struct {
	TouristID     string
	PackageID     string
	Status        string
	PaymentStatus string
}

type BookingService interface {
	CreateBooking(ctx context.Context, caller Caller, in CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, caller Caller, id uuid.UUID) (*models.Booking, error)
	ListBookings(ctx context.Context, caller Caller, filter BookingListFilter) ([]models.Booking, error)
	ListByTourist(ctx context.Context, caller Caller, touristID uuid.UUID) ([]models.Booking, error)
	ListByPackage(ctx context.Context, caller Caller, packageID uuid.UUID) ([]models.Booking, error)
	ListPendingVerification(ctx context.Context, caller Caller) ([]models.Booking, error)
	UploadPaymentProof(ctx context.Context, caller Caller, bookingID uuid.UUID, file *Upload) (*models.Booking, error)
	VerifyPayment(ctx context.Context, caller Caller, bookingID uuid.UUID) (*models.Booking, error)
	RejectPayment(ctx context.Context, caller Caller, bookingID uuid.UUID, reason string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*models.Booking, error)
}

type bookingService struct {
	tx          repository.Transactor
	bookingRepo repository.BookingRepository
	packageRepo repository.PackageRepository
	files       FileStore
	publisher   EventPublisher
	now         func() time.Time
}

func NewBookingService(
	tx repository.Transactor,
	bookingRepo repository.BookingRepository,
	packageRepo repository.PackageRepository,
	files FileStore,
	publisher EventPublisher,
) BookingService {
	return newBookingService(tx, bookingRepo, packageRepo, files, publisher)
}

func newBookingService(
	tx repository.Transactor,
	bookingRepo repository.BookingRepository,
	packageRepo repository.PackageRepository,
	files FileStore,
	publisher EventPublisher,
) *bookingService {
	return &bookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
		files:       files,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, caller Caller, in CreateBookingInput) (*models.Booking, error) {
	if err := authorize(caller, models.RoleTourist, nil); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, ErrMissingFields
	}

	travelDate, err := parseTravelDate(in.TravelDate)
	if err != nil {
		return nil, ErrInvalidTravelDate
	}
	if travelDate.Before(dateOf(s.now()).AddDate(0, 0, minLeadDays)) {
		return nil, ErrTravelDateTooSoon
	}
	if in.TravelersCount < 1 {
		return nil, ErrInvalidTravelers
	}
	if in.TotalPrice <= 0 {
		return nil, ErrInvalidTotalPrice
	}
	packageID, err := uuid.Parse(in.PackageID)
	if err != nil {
		return nil, ErrPackageNotFound
	}

	var result *models.Booking
	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		// Lock the package row so concurrent bookings read a stable capacity
		pkg, err := s.packageRepo.FindByIDForUpdate(ctx, tx, packageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return fmt.Errorf("load package: %w", err)
		}
		if in.TravelersCount > pkg.MaxTravelers {
			return validationf("travelers count cannot exceed %d for this package", pkg.MaxTravelers)
		}

		booking := &models.Booking{
			ID:             uuid.New(),
			PackageID:      pkg.ID,
			TouristID:      caller.ID,
			TravelDate:     travelDate,
			TravelersCount: in.TravelersCount,
			TotalPrice:     in.TotalPrice,
			Status:         models.StatusPending,
			PaymentStatus:  models.PaymentUnpaid,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return storeError("create booking", err, ErrInvalidReference)
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	publish(ctx, s.publisher, EventBookingCreated, newBookingEvent(result, s.now()))
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, caller Caller, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case models.RoleTourist:
		if err := authorize(caller, models.RoleTourist, &booking.TouristID); err != nil {
			return nil, err
		}
	case models.RoleAgent:
		pkg, err := s.packageOf(ctx, booking)
		if err != nil {
			return nil, err
		}
		if err := authorize(caller, models.RoleAgent, &pkg.AgentID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, caller Caller, filter BookingListFilter) ([]models.Booking, error) {
	f, err := parseBookingFilter(filter)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case models.RoleTourist:
		// Tourists only ever see their own bookings
		if f.TouristID != nil && *f.TouristID != caller.ID {
			return []models.Booking{}, nil
		}
		f.TouristID = &caller.ID
	case models.RoleAgent:
		f.AgentID = &caller.ID
	default:
		return nil, ErrForbidden
	}
	return s.find(ctx, f)
}

func (s *bookingService) ListByTourist(ctx context.Context, caller Caller, touristID uuid.UUID) ([]models.Booking, error) {
	f := repository.BookingFilter{TouristID: &touristID}
	switch caller.Role {
	case models.RoleTourist:
		if err := authorize(caller, models.RoleTourist, &touristID); err != nil {
			return nil, err
		}
	case models.RoleAgent:
		f.AgentID = &caller.ID
	default:
		return nil, ErrForbidden
	}
	return s.find(ctx, f)
}

func (s *bookingService) ListByPackage(ctx context.Context, caller Caller, packageID uuid.UUID) ([]models.Booking, error) {
	f := repository.BookingFilter{PackageID: &packageID}
	switch caller.Role {
	case models.RoleTourist:
		f.TouristID = &caller.ID
	case models.RoleAgent:
		pkg, err := s.packageRepo.FindByID(ctx, packageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrForbidden
			}
			return nil, fmt.Errorf("load package: %w", err)
		}
		if err := authorize(caller, models.RoleAgent, &pkg.AgentID); err != nil {
			return nil, err
		}
	default:
		return nil, ErrForbidden
	}
	return s.find(ctx, f)
}

func (s *bookingService) ListPendingVerification(ctx context.Context, caller Caller) ([]models.Booking, error) {
	if err := authorize(caller, models.RoleAgent, nil); err != nil {
		return nil, err
	}
	return s.find(ctx, repository.BookingFilter{
		AgentID:       &caller.ID,
		PaymentStatus: models.PaymentPendingVerification,
	})
}

func (s *bookingService) UploadPaymentProof(ctx context.Context, caller Caller, bookingID uuid.UUID, file *Upload) (*models.Booking, error) {
	if err := authorize(caller, models.RoleTourist, nil); err != nil {
		return nil, err
	}
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, models.RoleTourist, &booking.TouristID); err != nil {
		return nil, err
	}
	if !acceptsProof(booking.PaymentStatus) {
		return nil, ErrProofNotAccepted
	}

	ext, err := checkProof(file)
	if err != nil {
		metrics.UploadsRejected.WithLabelValues("payment_proof").Inc()
		return nil, err
	}
	name := fmt.Sprintf("%s_%s%s", booking.ID, uuid.New(), ext)
	url, err := s.files.Save(ProofDir, name, file.Data)
	if err != nil {
		return nil, fmt.Errorf("store payment proof: %w", err)
	}

	var result *models.Booking
	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		locked, err := s.lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		// Re-check under the lock: a concurrent upload may have won
		if !acceptsProof(locked.PaymentStatus) {
			return ErrProofNotAccepted
		}

		uploadedAt := s.now()
		locked.PaymentProofURL = &url
		locked.PaymentProofUploadedAt = &uploadedAt
		locked.PaymentStatus = models.PaymentPendingVerification
		if err := s.bookingRepo.Update(ctx, tx, locked,
			"payment_proof_url", "payment_proof_uploaded_at", "payment_status", "updated_at"); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		result = locked
		return nil
	})
	if err != nil {
		if rmErr := s.files.Remove(url); rmErr != nil {
			log.Printf("[BookingService] failed to remove orphaned proof %s: %v", url, rmErr)
		}
		return nil, err
	}

	metrics.PaymentTransitions.WithLabelValues(string(models.PaymentPendingVerification)).Inc()
	publish(ctx, s.publisher, EventBookingPaymentSubmitted, newBookingEvent(result, s.now()))
	return result, nil
}

func (s *bookingService) VerifyPayment(ctx context.Context, caller Caller, bookingID uuid.UUID) (*models.Booking, error) {
	result, err := s.reviewPayment(ctx, caller, bookingID, func(b *models.Booking) {
		verifiedAt := s.now()
		b.PaymentStatus = models.PaymentVerified
		b.PaymentVerifiedAt = &verifiedAt
		b.Status = models.StatusConfirmed
		b.PaymentRejectionReason = nil
	}, "payment_status", "payment_verified_at", "status", "payment_rejection_reason", "updated_at")
	if err != nil {
		return nil, err
	}

	metrics.PaymentTransitions.WithLabelValues(string(models.PaymentVerified)).Inc()
	publish(ctx, s.publisher, EventBookingPaymentVerified, newBookingEvent(result, s.now()))
	return result, nil
}

func (s *bookingService) RejectPayment(ctx context.Context, caller Caller, bookingID uuid.UUID, reason string) (*models.Booking, error) {
	if err := authorize(caller, models.RoleAgent, nil); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, ErrReasonRequired
	}

	result, err := s.reviewPayment(ctx, caller, bookingID, func(b *models.Booking) {
		b.PaymentStatus = models.PaymentRejected
		b.PaymentRejectionReason = &reason
	}, "payment_status", "payment_rejection_reason", "updated_at")
	if err != nil {
		return nil, err
	}

	metrics.PaymentTransitions.WithLabelValues(string(models.PaymentRejected)).Inc()
	publish(ctx, s.publisher, EventBookingPaymentRejected, newBookingEvent(result, s.now()))
	return result, nil
}

// reviewPayment applies an agent decision to a booking awaiting
// verification, under a row lock.
func (s *bookingService) reviewPayment(
	ctx context.Context,
	caller Caller,
	bookingID uuid.UUID,
	apply func(b *models.Booking),
	columns ...string,
) (*models.Booking, error) {
	if err := authorize(caller, models.RoleAgent, nil); err != nil {
		return nil, err
	}

	var result *models.Booking
	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		pkg, err := s.packageOf(ctx, booking)
		if err != nil {
			return err
		}
		if err := authorize(caller, models.RoleAgent, &pkg.AgentID); err != nil {
			return err
		}
		if booking.PaymentStatus != models.PaymentPendingVerification {
			return ErrPaymentNotPending
		}

		apply(booking)
		if err := s.bookingRepo.Update(ctx, tx, booking, columns...); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		booking.Package = pkg
		result = booking
		return nil
	})
	return result, err
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	var result *models.Booking
	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.StatusConfirmed {
			return ErrNotCompletable
		}

		completedAt := s.now()
		booking.Status = models.StatusCompleted
		booking.CompletedAt = &completedAt
		if err := s.bookingRepo.Update(ctx, tx, booking, "status", "completed_at", "updated_at"); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingTransitions.WithLabelValues(string(models.StatusCompleted)).Inc()
	publish(ctx, s.publisher, EventBookingCompleted, newBookingEvent(result, s.now()))
	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string) (*models.Booking, error) {
	var result *models.Booking
	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.lockBooking(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.StatusPending && booking.Status != models.StatusConfirmed {
			return ErrNotCancellable
		}

		booking.Status = models.StatusCancelled
		if err := s.bookingRepo.Update(ctx, tx, booking, "status", "updated_at"); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[BookingService] booking %s cancelled: %s", bookingID, reason)
	metrics.BookingTransitions.WithLabelValues(string(models.StatusCancelled)).Inc()
	ev := newBookingEvent(result, s.now())
	ev.Reason = reason
	publish(ctx, s.publisher, EventBookingCancelled, ev)
	return result, nil
}

func (s *bookingService) find(ctx context.Context, f repository.BookingFilter) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) findBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) lockBooking(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lock booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) packageOf(ctx context.Context, booking *models.Booking) (*models.Package, error) {
	if booking.Package != nil {
		return booking.Package, nil
	}
	pkg, err := s.packageRepo.FindByID(ctx, booking.PackageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("load package: %w", err)
	}
	return pkg, nil
}

func acceptsProof(status models.PaymentStatus) bool {
	return status == models.PaymentUnpaid || status == models.PaymentRejected
}

// parseTravelDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping only
// the calendar date.
func parseTravelDate(s string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseBookingFilter(in BookingListFilter) (repository.BookingFilter, error) {
	var f repository.BookingFilter
	if in.TouristID != "" {
		id, err := uuid.Parse(in.TouristID)
		if err != nil {
			return f, newError(ErrValidation, "invalid tourist_id")
		}
		f.TouristID = &id
	}
	if in.PackageID != "" {
		id, err := uuid.Parse(in.PackageID)
		if err != nil {
			return f, newError(ErrValidation, "invalid package_id")
		}
		f.PackageID = &id
	}
	f.Status = models.BookingStatus(in.Status)
	f.PaymentStatus = models.PaymentStatus(in.PaymentStatus)
	return f, nil
}
