package repository

import (
	"context"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PackageSort string

const (
	SortByCreatedAt PackageSort = "created_at"
	SortByPrice     PackageSort = "price"
	SortByDuration  PackageSort = "duration"
)

type PackageFilter struct {
	DestinationID *uuid.UUID
	Query         string
	MinPrice      *float64
	MaxPrice      *float64
	SortBy        PackageSort
	Desc          bool
}

type PackageRepository interface {
	Create(ctx context.Context, pkg *models.Package) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Package, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Package, error)
	Search(ctx context.Context, filter PackageFilter) ([]models.Package, error)
	FindByAgent(ctx context.Context, agentID uuid.UUID) ([]models.Package, error)
	CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// FindByIDForUpdate acquires a row-level lock on the package within the given transaction.
func (r *packageRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) Search(ctx context.Context, filter PackageFilter) ([]models.Package, error) {
	var packages []models.Package
	q := r.db.WithContext(ctx)
	if filter.DestinationID != nil {
		q = q.Where("destination_id = ?", *filter.DestinationID)
	}
	if filter.Query != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}

	column := SortByCreatedAt
	switch filter.SortBy {
	case SortByPrice, SortByDuration:
		column = filter.SortBy
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: string(column)}, Desc: filter.Desc}).
		Order("id ASC")

	if err := q.Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *packageRepository) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]models.Package, error) {
	var packages []models.Package
	if err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *packageRepository) CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Package{}).
		Where("agent_id = ?", agentID).
		Count(&count).Error
	return count, err
}
