package service

import (
	"context"
	"fmt"
	"time"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReviewInput struct {
	BookingID string `validate:"required,uuid"`
	Rating    int    `validate:"required"`
	Comment   string `validate:"max=2000"`
}

type ReviewService interface {
	ListByPackage(ctx context.Context, packageID uuid.UUID) ([]models.Review, error)
	ListByTourist(ctx context.Context, caller Caller, touristID uuid.UUID) ([]models.Review, error)
	CreateReview(ctx context.Context, caller Caller, in CreateReviewInput) (*models.Review, error)
}

type reviewService struct {
	tx          repository.Transactor
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	publisher   EventPublisher
	now         func() time.Time
}

func NewReviewService(
	tx repository.Transactor,
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	publisher EventPublisher,
) ReviewService {
	return &reviewService{
		tx:          tx,
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *reviewService) ListByPackage(ctx context.Context, packageID uuid.UUID) ([]models.Review, error) {
	reviews, err := s.reviewRepo.FindByPackage(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// ListByTourist lets a tourist read only their own reviews; agents may read
// any tourist's reviews.
func (s *reviewService) ListByTourist(ctx context.Context, caller Caller, touristID uuid.UUID) ([]models.Review, error) {
	switch caller.Role {
	case models.RoleTourist:
		if err := authorize(caller, models.RoleTourist, &touristID); err != nil {
			return nil, err
		}
	case models.RoleAgent:
	default:
		return nil, ErrForbidden
	}

	reviews, err := s.reviewRepo.FindByTourist(ctx, touristID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// CreateReview records a review for a completed booking and marks the
// booking as reviewed in the same transaction.
func (s *reviewService) CreateReview(ctx context.Context, caller Caller, in CreateReviewInput) (*models.Review, error) {
	if err := authorize(caller, models.RoleTourist, nil); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	bookingID := uuid.MustParse(in.BookingID)

	var result *models.Review
	err := s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if isNotFound(err) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("lock booking: %w", err)
		}
		if err := authorize(caller, models.RoleTourist, &booking.TouristID); err != nil {
			return err
		}
		if booking.Status != models.StatusCompleted {
			return ErrNotReviewable
		}
		if booking.HasReviewed {
			return ErrBookingReviewed
		}

		review := &models.Review{
			ID:        uuid.New(),
			PackageID: booking.PackageID,
			TouristID: caller.ID,
			BookingID: &booking.ID,
			Rating:    in.Rating,
			Comment:   in.Comment,
		}
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			return storeError("create review", err, ErrAlreadyReviewed)
		}

		booking.HasReviewed = true
		if err := s.bookingRepo.Update(ctx, tx, booking, "has_reviewed", "updated_at"); err != nil {
			return fmt.Errorf("mark booking reviewed: %w", err)
		}
		result = review
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, EventReviewCreated, ReviewEvent{
		ReviewID:   result.ID,
		PackageID:  result.PackageID,
		TouristID:  result.TouristID,
		BookingID:  bookingID,
		Rating:     result.Rating,
		OccurredAt: s.now(),
	})
	return result, nil
}
