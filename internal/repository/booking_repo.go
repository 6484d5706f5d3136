package repository

import (
	"context"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingFilter fields are ANDed; nil/empty fields are ignored. AgentID
// restricts to bookings on packages owned by that agent.
type BookingFilter struct {
	TouristID     *uuid.UUID
	PackageID     *uuid.UUID
	AgentID       *uuid.UUID
	Status        models.BookingStatus
	PaymentStatus models.PaymentStatus
}

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Booking, error)
	Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	Update(ctx context.Context, tx *gorm.DB, booking *models.Booking, columns ...string) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Package").
		Preload("Tourist").
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate acquires a row-level lock on the booking within the given
// transaction. Associations are not loaded.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Find(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.WithContext(ctx).Preload("Package").Preload("Tourist")
	if filter.TouristID != nil {
		q = q.Where("tourist_id = ?", *filter.TouristID)
	}
	if filter.PackageID != nil {
		q = q.Where("package_id = ?", *filter.PackageID)
	}
	if filter.AgentID != nil {
		owned := r.db.Model(&models.Package{}).Select("id").Where("agent_id = ?", *filter.AgentID)
		q = q.Where("package_id IN (?)", owned)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		q = q.Where("payment_status = ?", filter.PaymentStatus)
	}
	if err := q.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Update writes only the named columns of booking.
func (r *bookingRepository) Update(ctx context.Context, tx *gorm.DB, booking *models.Booking, columns ...string) error {
	return tx.WithContext(ctx).
		Model(booking).
		Select(columns).
		Updates(booking).Error
}
