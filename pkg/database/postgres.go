package database

import (
	"fmt"
	"log"
	"time"

	"github.com/daniel-got/uas-paw-kelompok-6/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func NewPostgresDB(dsn string, pool PoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		// users belong to the auth service, so tourist and agent ids carry
		// no foreign keys; the catalog relations are added in Migrate.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	return db, nil
}

// Migrate creates or updates the marketplace schema. It is safe to run on
// every start.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Destination{},
		&models.Package{},
		&models.Booking{},
		&models.Review{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	relations := []struct {
		model any
		name  string
	}{
		{&models.Package{}, "Destination"},
		{&models.Booking{}, "Package"},
		{&models.Review{}, "Package"},
		{&models.Review{}, "Booking"},
	}
	m := db.Migrator()
	for _, r := range relations {
		if m.HasConstraint(r.model, r.name) {
			continue
		}
		if err := m.CreateConstraint(r.model, r.name); err != nil {
			return fmt.Errorf("create constraint %s: %w", r.name, err)
		}
	}

	if !m.HasConstraint(&models.Review{}, "chk_reviews_rating") {
		if err := db.Exec(`ALTER TABLE reviews ADD CONSTRAINT chk_reviews_rating CHECK (rating BETWEEN 1 AND 5)`).Error; err != nil {
			return fmt.Errorf("create rating check: %w", err)
		}
	}

	// Agents poll the verification queue per package.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_pending_payment
		ON bookings (package_id)
		WHERE payment_status = 'pending_verification'
	`).Error; err != nil {
		return fmt.Errorf("create pending payment index: %w", err)
	}

	log.Println("[Database] schema up to date")
	return nil
}
