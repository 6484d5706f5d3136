package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error categories. Every error returned by a service either wraps one of
// these or is unexpected.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
)

type serviceError struct {
	kind error
	msg  string
}

func (e *serviceError) Error() string { return e.msg }
func (e *serviceError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &serviceError{kind: kind, msg: msg}
}

func validationf(format string, args ...any) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

var (
	ErrMissingFields      = newError(ErrValidation, "missing required fields")
	ErrInvalidTravelDate  = newError(ErrValidation, "invalid travel date format, expected YYYY-MM-DD")
	ErrTravelDateTooSoon  = newError(ErrValidation, "travel date must be at least 3 days from today")
	ErrInvalidTravelers   = newError(ErrValidation, "travelers count must be a positive integer")
	ErrInvalidTotalPrice  = newError(ErrValidation, "total price must be a positive number")
	ErrProofMissing       = newError(ErrValidation, "payment proof file is required")
	ErrProofType          = newError(ErrValidation, "payment proof must be an image file (jpeg, png, or gif)")
	ErrProofTooLarge      = newError(ErrValidation, "payment proof file size must be <= 5MB")
	ErrProofCorrupt       = newError(ErrValidation, "invalid image file")
	ErrReasonRequired     = newError(ErrValidation, "rejection reason is required")
	ErrImageType          = newError(ErrValidation, "package images must be jpg, jpeg, png, gif or webp")
	ErrImageTooLarge      = newError(ErrValidation, "package image size must be <= 5MB")
	ErrUnknownDestination = newError(ErrValidation, "destination id not found")
	ErrInvalidPrice       = newError(ErrValidation, "minPrice and maxPrice must be numbers")
	ErrInvalidRating      = newError(ErrValidation, "rating must be between 1 and 5")
	ErrInvalidReference   = newError(ErrValidation, "referenced record does not exist")

	ErrBookingNotFound     = newError(ErrNotFound, "booking not found")
	ErrPackageNotFound     = newError(ErrNotFound, "package not found")
	ErrDestinationNotFound = newError(ErrNotFound, "destination not found")

	ErrDestinationExists = newError(ErrConflict, "destination already exists")
	ErrPackageExists     = newError(ErrConflict, "package already exists")
	ErrAlreadyReviewed   = newError(ErrConflict, "booking has already been reviewed")

	ErrProofNotAccepted  = newError(ErrInvalidState, "cannot upload payment proof for this booking")
	ErrPaymentNotPending = newError(ErrInvalidState, "payment is not pending verification")
	ErrNotCompletable    = newError(ErrInvalidState, "only confirmed bookings can be completed")
	ErrNotCancellable    = newError(ErrInvalidState, "booking can no longer be cancelled")
	ErrNotReviewable     = newError(ErrInvalidState, "only completed bookings can be reviewed")
	ErrBookingReviewed   = newError(ErrInvalidState, "booking has already been reviewed")
)

// storeError maps persistence errors onto the service taxonomy. onConflict
// is returned for unique violations.
func storeError(op string, err error, onConflict error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return onConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidReference
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
