package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Mock Transactor ---

type mockTx struct{}

func (mockTx) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	createFn     func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	forUpdateFn  func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Booking, error)
	findFn       func(ctx context.Context, f repository.BookingFilter) ([]models.Booking, error)
	updateFn     func(ctx context.Context, tx *gorm.DB, b *models.Booking, columns ...string) error
	updatedCols  []string
	createCalled bool
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	m.createCalled = true
	if m.createFn != nil {
		return m.createFn(ctx, tx, b)
	}
	return nil
}
func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	if m.forUpdateFn != nil {
		return m.forUpdateFn(ctx, tx, id)
	}
	return m.findByIDFn(ctx, id)
}
func (m *mockBookingRepo) Find(ctx context.Context, f repository.BookingFilter) ([]models.Booking, error) {
	return m.findFn(ctx, f)
}
func (m *mockBookingRepo) Update(ctx context.Context, tx *gorm.DB, b *models.Booking, columns ...string) error {
	m.updatedCols = columns
	if m.updateFn != nil {
		return m.updateFn(ctx, tx, b, columns...)
	}
	return nil
}

// --- Mock PackageRepository ---

type mockPackageRepo struct {
	createFn      func(ctx context.Context, p *models.Package) error
	findByIDFn    func(ctx context.Context, id uuid.UUID) (*models.Package, error)
	searchFn      func(ctx context.Context, f repository.PackageFilter) ([]models.Package, error)
	findByAgentFn func(ctx context.Context, agentID uuid.UUID) ([]models.Package, error)
	countFn       func(ctx context.Context, agentID uuid.UUID) (int64, error)
}

func (m *mockPackageRepo) Create(ctx context.Context, p *models.Package) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}
func (m *mockPackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPackageRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*models.Package, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockPackageRepo) Search(ctx context.Context, f repository.PackageFilter) ([]models.Package, error) {
	return m.searchFn(ctx, f)
}
func (m *mockPackageRepo) FindByAgent(ctx context.Context, agentID uuid.UUID) ([]models.Package, error) {
	return m.findByAgentFn(ctx, agentID)
}
func (m *mockPackageRepo) CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	return m.countFn(ctx, agentID)
}

// --- Mock DestinationRepository ---

type mockDestinationRepo struct {
	createFn   func(ctx context.Context, d *models.Destination) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	findAllFn  func(ctx context.Context, f repository.DestinationFilter) ([]models.Destination, error)
}

func (m *mockDestinationRepo) Create(ctx context.Context, d *models.Destination) error {
	return m.createFn(ctx, d)
}
func (m *mockDestinationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockDestinationRepo) FindAll(ctx context.Context, f repository.DestinationFilter) ([]models.Destination, error) {
	return m.findAllFn(ctx, f)
}

// --- Mock ReviewRepository ---

type mockReviewRepo struct {
	createFn        func(ctx context.Context, tx *gorm.DB, r *models.Review) error
	findByPackageFn func(ctx context.Context, packageID uuid.UUID) ([]models.Review, error)
	findByTouristFn func(ctx context.Context, touristID uuid.UUID) ([]models.Review, error)
	countFn         func(ctx context.Context, touristID uuid.UUID) (int64, error)
	avgByAgentFn    func(ctx context.Context, agentID uuid.UUID) (*float64, error)
	avgByPackageFn  func(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]float64, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Review) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, r)
	}
	return nil
}
func (m *mockReviewRepo) FindByPackage(ctx context.Context, packageID uuid.UUID) ([]models.Review, error) {
	return m.findByPackageFn(ctx, packageID)
}
func (m *mockReviewRepo) FindByTourist(ctx context.Context, touristID uuid.UUID) ([]models.Review, error) {
	return m.findByTouristFn(ctx, touristID)
}
func (m *mockReviewRepo) CountByTourist(ctx context.Context, touristID uuid.UUID) (int64, error) {
	return m.countFn(ctx, touristID)
}
func (m *mockReviewRepo) AverageRatingByAgent(ctx context.Context, agentID uuid.UUID) (*float64, error) {
	return m.avgByAgentFn(ctx, agentID)
}
func (m *mockReviewRepo) AverageRatingByPackage(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]float64, error) {
	return m.avgByPackageFn(ctx, ids)
}

// --- Mock FileStore ---

type mockFileStore struct {
	saveErr error
	saveAt  int // fail on the n-th save (1-based); 0 fails every save when saveErr is set
	saved   []string
	removed []string
}

func (m *mockFileStore) Save(dir, name string, data []byte) (string, error) {
	if m.saveErr != nil && (m.saveAt == 0 || len(m.saved)+1 == m.saveAt) {
		return "", m.saveErr
	}
	url := "/" + dir + "/" + name
	m.saved = append(m.saved, url)
	return url, nil
}

func (m *mockFileStore) Remove(url string) error {
	m.removed = append(m.removed, url)
	return nil
}

// --- Mock EventPublisher ---

type publishedEvent struct {
	key     string
	payload any
}

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{key: routingKey, payload: payload})
	return nil
}

func (m *mockPublisher) keys() []string {
	keys := make([]string, len(m.events))
	for i, e := range m.events {
		keys[i] = e.key
	}
	return keys
}

// --- Mock Cache ---

type mockCache struct {
	data map[string][]byte
	gets int
	sets int
}

func newMockCache() *mockCache {
	return &mockCache{data: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	m.gets++
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mockCache) Set(ctx context.Context, key string, value any) error {
	m.sets++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}
