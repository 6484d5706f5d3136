package repository

import (
	"context"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *models.Review) error
	FindByPackage(ctx context.Context, packageID uuid.UUID) ([]models.Review, error)
	FindByTourist(ctx context.Context, touristID uuid.UUID) ([]models.Review, error)
	CountByTourist(ctx context.Context, touristID uuid.UUID) (int64, error)
	AverageRatingByAgent(ctx context.Context, agentID uuid.UUID) (*float64, error)
	AverageRatingByPackage(ctx context.Context, packageIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	return tx.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByPackage(ctx context.Context, packageID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Tourist").
		Where("package_id = ?", packageID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByTourist(ctx context.Context, touristID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Package").
		Where("tourist_id = ?", touristID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) CountByTourist(ctx context.Context, touristID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("tourist_id = ?", touristID).
		Count(&count).Error
	return count, err
}

// AverageRatingByAgent returns nil when the agent's packages have no reviews.
func (r *reviewRepository) AverageRatingByAgent(ctx context.Context, agentID uuid.UUID) (*float64, error) {
	var row struct {
		Avg *float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(reviews.rating) AS avg").
		Joins("JOIN packages ON packages.id = reviews.package_id").
		Where("packages.agent_id = ?", agentID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.Avg, nil
}

// AverageRatingByPackage returns the mean rating per package. Packages
// without reviews are absent from the map.
func (r *reviewRepository) AverageRatingByPackage(ctx context.Context, packageIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	result := make(map[uuid.UUID]float64, len(packageIDs))
	if len(packageIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		PackageID uuid.UUID
		Avg       float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("package_id, AVG(rating) AS avg").
		Where("package_id IN ?", packageIDs).
		Group("package_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PackageID] = row.Avg
	}
	return result, nil
}
