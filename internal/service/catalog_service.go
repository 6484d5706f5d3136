package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/metrics"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateDestinationInput struct {
	Name        string `validate:"required"`
	Description string `validate:"required"`
	PhotoURL    string `validate:"required"`
	Country     string `validate:"required"`
}

type CreatePackageInput struct {
	DestinationID string   `validate:"required,uuid"`
	Name          string   `validate:"required"`
	Duration      int      `validate:"required,gt=0"`
	Price         float64  `validate:"required,gt=0"`
	Itinerary     string   `validate:"required"`
	MaxTravelers  int      `validate:"required,gt=0"`
	ContactPhone  string   `validate:"required"`
	Images        []string `validate:"dive,required"`
}

// PackageListFilter holds raw browse parameters.
type PackageListFilter struct {
	Destination string
	Query       string
	MinPrice    string
	MaxPrice    string
	SortBy      string
	Order       string
}

type CatalogService interface {
	ListDestinations(ctx context.Context, filter repository.DestinationFilter) ([]models.Destination, error)
	GetDestination(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	CreateDestination(ctx context.Context, caller Caller, in CreateDestinationInput) (*models.Destination, error)
	ListPackages(ctx context.Context, filter PackageListFilter) ([]models.Package, error)
	GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error)
	ListAgentPackages(ctx context.Context, agentID uuid.UUID) ([]models.Package, error)
	CreatePackage(ctx context.Context, caller Caller, in CreatePackageInput, uploads []Upload) (*models.Package, error)
}

type catalogService struct {
	destinationRepo repository.DestinationRepository
	packageRepo     repository.PackageRepository
	files           FileStore
}

func NewCatalogService(destinationRepo repository.DestinationRepository, packageRepo repository.PackageRepository, files FileStore) CatalogService {
	return &catalogService{
		destinationRepo: destinationRepo,
		packageRepo:     packageRepo,
		files:           files,
	}
}

func (s *catalogService) ListDestinations(ctx context.Context, filter repository.DestinationFilter) ([]models.Destination, error) {
	destinations, err := s.destinationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list destinations: %w", err)
	}
	if destinations == nil {
		destinations = []models.Destination{}
	}
	return destinations, nil
}

func (s *catalogService) GetDestination(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	destination, err := s.destinationRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, fmt.Errorf("load destination: %w", err)
	}
	return destination, nil
}

func (s *catalogService) CreateDestination(ctx context.Context, caller Caller, in CreateDestinationInput) (*models.Destination, error) {
	if err := authorize(caller, models.RoleAgent, nil); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	destination := &models.Destination{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		PhotoURL:    in.PhotoURL,
		Country:     in.Country,
	}
	if err := s.destinationRepo.Create(ctx, destination); err != nil {
		return nil, storeError("create destination", err, ErrDestinationExists)
	}
	return destination, nil
}

func (s *catalogService) ListPackages(ctx context.Context, filter PackageListFilter) ([]models.Package, error) {
	f := repository.PackageFilter{
		Query:  strings.TrimSpace(filter.Query),
		SortBy: repository.PackageSort(filter.SortBy),
		Desc:   filter.Order == "desc",
	}
	if filter.SortBy == "createdAt" {
		f.SortBy = repository.SortByCreatedAt
	}
	// Malformed destination ids are ignored so browsing stays permissive
	if filter.Destination != "" && filter.Destination != "all" {
		if id, err := uuid.Parse(filter.Destination); err == nil {
			f.DestinationID = &id
		}
	}
	var err error
	if f.MinPrice, err = parsePrice(filter.MinPrice); err != nil {
		return nil, err
	}
	if f.MaxPrice, err = parsePrice(filter.MaxPrice); err != nil {
		return nil, err
	}

	packages, err := s.packageRepo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search packages: %w", err)
	}
	if packages == nil {
		packages = []models.Package{}
	}
	return packages, nil
}

func (s *catalogService) GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	pkg, err := s.packageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("load package: %w", err)
	}
	return pkg, nil
}

func (s *catalogService) ListAgentPackages(ctx context.Context, agentID uuid.UUID) ([]models.Package, error) {
	packages, err := s.packageRepo.FindByAgent(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("list agent packages: %w", err)
	}
	if packages == nil {
		packages = []models.Package{}
	}
	return packages, nil
}

func (s *catalogService) CreatePackage(ctx context.Context, caller Caller, in CreatePackageInput, uploads []Upload) (*models.Package, error) {
	if err := authorize(caller, models.RoleAgent, nil); err != nil {
		return nil, err
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	destinationID := uuid.MustParse(in.DestinationID)
	if _, err := s.destinationRepo.FindByID(ctx, destinationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownDestination
		}
		return nil, fmt.Errorf("load destination: %w", err)
	}

	// Validate every file before writing any of them
	names := make([]string, len(uploads))
	for i, u := range uploads {
		name, err := checkPackageImage(u)
		if err != nil {
			metrics.UploadsRejected.WithLabelValues("package_image").Inc()
			return nil, err
		}
		names[i] = name
	}

	images := append([]string{}, in.Images...)
	stored := make([]string, 0, len(uploads))
	for i, u := range uploads {
		url, err := s.files.Save(PackageDir, names[i], u.Data)
		if err != nil {
			s.removeFiles(stored)
			return nil, fmt.Errorf("store package image: %w", err)
		}
		stored = append(stored, url)
	}
	images = append(images, stored...)

	pkg := &models.Package{
		ID:            uuid.New(),
		AgentID:       caller.ID,
		DestinationID: destinationID,
		Name:          in.Name,
		Duration:      in.Duration,
		Price:         in.Price,
		Itinerary:     in.Itinerary,
		MaxTravelers:  in.MaxTravelers,
		ContactPhone:  in.ContactPhone,
		Images:        images,
	}
	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		s.removeFiles(stored)
		return nil, storeError("create package", err, ErrPackageExists)
	}
	return pkg, nil
}

func (s *catalogService) removeFiles(urls []string) {
	for _, url := range urls {
		if err := s.files.Remove(url); err != nil {
			log.Printf("[CatalogService] failed to remove %s: %v", url, err)
		}
	}
}

func parsePrice(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, ErrInvalidPrice
	}
	return &v, nil
}
