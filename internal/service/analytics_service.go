package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/metrics"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPerformanceLimit = 5
	MaxPerformanceLimit     = 100
)

type AgentStats struct {
	TotalPackages               int64   `json:"totalPackages"`
	TotalBookings               int     `json:"totalBookings"`
	PendingBookings             int     `json:"pendingBookings"`
	ConfirmedBookings           int     `json:"confirmedBookings"`
	CompletedBookings           int     `json:"completedBookings"`
	CancelledBookings           int     `json:"cancelledBookings"`
	TotalRevenue                float64 `json:"totalRevenue"`
	AverageRating               float64 `json:"averageRating"`
	PendingPaymentVerifications int     `json:"pendingPaymentVerifications"`
}

type PackagePerformance struct {
	PackageID     uuid.UUID `json:"packageId"`
	PackageName   string    `json:"packageName"`
	BookingsCount int       `json:"bookingsCount"`
	Revenue       float64   `json:"revenue"`
	AverageRating float64   `json:"averageRating"`
}

type TouristStats struct {
	TotalBookings     int     `json:"totalBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	CompletedBookings int     `json:"completedBookings"`
	CancelledBookings int     `json:"cancelledBookings"`
	TotalSpent        float64 `json:"totalSpent"`
	ReviewsGiven      int64   `json:"reviewsGiven"`
	WishlistCount     int     `json:"wishlistCount"`
}

type AnalyticsService interface {
	AgentStats(ctx context.Context, caller Caller) (*AgentStats, error)
	AgentPackagePerformance(ctx context.Context, caller Caller, limit int) ([]PackagePerformance, error)
	TouristStats(ctx context.Context, caller Caller) (*TouristStats, error)
}

type analyticsService struct {
	bookingRepo repository.BookingRepository
	packageRepo repository.PackageRepository
	reviewRepo  repository.ReviewRepository
	cache       Cache
}

// NewAnalyticsService builds the dashboard aggregator. cache may be nil.
func NewAnalyticsService(
	bookingRepo repository.BookingRepository,
	packageRepo repository.PackageRepository,
	reviewRepo repository.ReviewRepository,
	cache Cache,
) AnalyticsService {
	return &analyticsService{
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
		reviewRepo:  reviewRepo,
		cache:       cache,
	}
}

func (s *analyticsService) AgentStats(ctx context.Context, caller Caller) (*AgentStats, error) {
	if err := authorize(caller, models.RoleAgent, nil); err != nil {
		return nil, err
	}

	var stats AgentStats
	key := fmt.Sprintf("analytics:agent:%s:stats", caller.ID)
	if s.cached(ctx, key, &stats) {
		return &stats, nil
	}

	total, err := s.packageRepo.CountByAgent(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("count packages: %w", err)
	}
	bookings, err := s.bookingRepo.Find(ctx, repository.BookingFilter{AgentID: &caller.ID})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	avg, err := s.reviewRepo.AverageRatingByAgent(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}

	stats = summarizeAgent(total, bookings, avg)
	s.store(ctx, key, stats)
	return &stats, nil
}

func (s *analyticsService) AgentPackagePerformance(ctx context.Context, caller Caller, limit int) ([]PackagePerformance, error) {
	if err := authorize(caller, models.RoleAgent, nil); err != nil {
		return nil, err
	}
	if limit < 1 || limit > MaxPerformanceLimit {
		limit = DefaultPerformanceLimit
	}

	var result []PackagePerformance
	key := fmt.Sprintf("analytics:agent:%s:performance:%d", caller.ID, limit)
	if s.cached(ctx, key, &result) {
		return result, nil
	}

	packages, err := s.packageRepo.FindByAgent(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	bookings, err := s.bookingRepo.Find(ctx, repository.BookingFilter{AgentID: &caller.ID})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	ids := make([]uuid.UUID, len(packages))
	for i, p := range packages {
		ids[i] = p.ID
	}
	ratings, err := s.reviewRepo.AverageRatingByPackage(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("average ratings: %w", err)
	}

	result = rankPackages(packages, bookings, ratings, limit)
	s.store(ctx, key, result)
	return result, nil
}

func (s *analyticsService) TouristStats(ctx context.Context, caller Caller) (*TouristStats, error) {
	if err := authorize(caller, models.RoleTourist, nil); err != nil {
		return nil, err
	}

	var stats TouristStats
	key := fmt.Sprintf("analytics:tourist:%s:stats", caller.ID)
	if s.cached(ctx, key, &stats) {
		return &stats, nil
	}

	bookings, err := s.bookingRepo.Find(ctx, repository.BookingFilter{TouristID: &caller.ID})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	reviews, err := s.reviewRepo.CountByTourist(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	stats = summarizeTourist(bookings, reviews)
	s.store(ctx, key, stats)
	return &stats, nil
}

func (s *analyticsService) cached(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("[AnalyticsService] cache get %s: %v", key, err)
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (s *analyticsService) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[AnalyticsService] cache set %s: %v", key, err)
	}
}

func summarizeAgent(totalPackages int64, bookings []models.Booking, avgRating *float64) AgentStats {
	stats := AgentStats{
		TotalPackages: totalPackages,
		TotalBookings: len(bookings),
	}
	revenue := decimal.Zero
	for _, b := range bookings {
		switch b.Status {
		case models.StatusPending:
			stats.PendingBookings++
		case models.StatusConfirmed:
			stats.ConfirmedBookings++
		case models.StatusCompleted:
			stats.CompletedBookings++
		case models.StatusCancelled:
			stats.CancelledBookings++
		}
		if b.Status.Revenue() {
			revenue = revenue.Add(decimal.NewFromFloat(b.TotalPrice))
		}
		if b.PaymentStatus == models.PaymentPendingVerification {
			stats.PendingPaymentVerifications++
		}
	}
	stats.TotalRevenue = round2(revenue)
	if avgRating != nil {
		stats.AverageRating = round2(decimal.NewFromFloat(*avgRating))
	}
	return stats
}

func rankPackages(packages []models.Package, bookings []models.Booking, ratings map[uuid.UUID]float64, limit int) []PackagePerformance {
	type tally struct {
		count   int
		revenue decimal.Decimal
	}
	tallies := make(map[uuid.UUID]*tally, len(packages))
	for _, p := range packages {
		tallies[p.ID] = &tally{revenue: decimal.Zero}
	}
	for _, b := range bookings {
		t, ok := tallies[b.PackageID]
		if !ok || !b.Status.Revenue() {
			continue
		}
		t.count++
		t.revenue = t.revenue.Add(decimal.NewFromFloat(b.TotalPrice))
	}

	result := make([]PackagePerformance, 0, len(packages))
	for _, p := range packages {
		t := tallies[p.ID]
		result = append(result, PackagePerformance{
			PackageID:     p.ID,
			PackageName:   p.Name,
			BookingsCount: t.count,
			Revenue:       round2(t.revenue),
			AverageRating: round2(decimal.NewFromFloat(ratings[p.ID])),
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Revenue > result[j].Revenue
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

func summarizeTourist(bookings []models.Booking, reviewsGiven int64) TouristStats {
	stats := TouristStats{
		TotalBookings: len(bookings),
		ReviewsGiven:  reviewsGiven,
	}
	spent := decimal.Zero
	for _, b := range bookings {
		switch b.Status {
		case models.StatusPending:
			stats.PendingBookings++
		case models.StatusConfirmed:
			stats.ConfirmedBookings++
		case models.StatusCompleted:
			stats.CompletedBookings++
		case models.StatusCancelled:
			stats.CancelledBookings++
		}
		if b.Status.Revenue() {
			spent = spent.Add(decimal.NewFromFloat(b.TotalPrice))
		}
	}
	stats.TotalSpent = round2(spent)
	return stats
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
