package repository

import (
	"context"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DestinationFilter struct {
	Country string
	Name    string
}

type DestinationRepository interface {
	Create(ctx context.Context, destination *models.Destination) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	FindAll(ctx context.Context, filter DestinationFilter) ([]models.Destination, error)
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) Create(ctx context.Context, destination *models.Destination) error {
	return r.db.WithContext(ctx).Create(destination).Error
}

func (r *destinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	var destination models.Destination
	if err := r.db.WithContext(ctx).First(&destination, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &destination, nil
}

func (r *destinationRepository) FindAll(ctx context.Context, filter DestinationFilter) ([]models.Destination, error) {
	var destinations []models.Destination
	q := r.db.WithContext(ctx)
	if filter.Country != "" {
		q = q.Where("country = ?", filter.Country)
	}
	if filter.Name != "" {
		q = q.Where("name = ?", filter.Name)
	}
	if err := q.Order("name ASC").Find(&destinations).Error; err != nil {
		return nil, err
	}
	return destinations, nil
}
