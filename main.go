package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/daniel-got/uas-paw-kelompok-6/config"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/consumer"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/handler"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/middleware"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/repository"
	"github.com/daniel-got/uas-paw-kelompok-6/internal/service"
	"github.com/daniel-got/uas-paw-kelompok-6/pkg/cache"
	"github.com/daniel-got/uas-paw-kelompok-6/pkg/database"
	"github.com/daniel-got/uas-paw-kelompok-6/pkg/filestore"
	"github.com/daniel-got/uas-paw-kelompok-6/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DSN(), database.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}

	// Repositories
	destinationRepo := repository.NewDestinationRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	tx := repository.NewTransactor(db)

	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitURL, rabbitmq.MarketplaceExchange)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		publisher = p
	} else {
		log.Println("[RabbitMQ] RABBITMQ_URL empty, domain events disabled")
	}

	var dashboardCache service.Cache
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		defer client.Close()
		dashboardCache = cache.New(client, cfg.CacheTTL)
	}

	// Services
	bookingSvc := service.NewBookingService(tx, bookingRepo, packageRepo, files, publisher)
	catalogSvc := service.NewCatalogService(destinationRepo, packageRepo, files)
	reviewSvc := service.NewReviewService(tx, reviewRepo, bookingRepo, publisher)
	analyticsSvc := service.NewAnalyticsService(bookingRepo, packageRepo, reviewRepo, dashboardCache)

	// Trip status updates from operations
	var consumerDone <-chan struct{}
	if cfg.RabbitURL != "" {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.OperationsExchange, rabbitmq.TripStatusQueue, consumer.TripKeys...)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumerDone = consumer.NewTripConsumer(bookingSvc).Start(ctx, msgs)
	}

	e := newEcho(cfg.BodyLimit)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "travel-marketplace"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/"+service.ProofDir, files.Dir(service.ProofDir))
	e.Static("/"+service.PackageDir, files.Dir(service.PackageDir))

	api := e.Group("/api")
	auth := middleware.JWTAuth([]byte(cfg.JWTSecret))
	handler.NewCatalogHandler(catalogSvc).RegisterRoutes(api, auth)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api, auth)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(api, auth)
	handler.NewAnalyticsHandler(analyticsSvc).RegisterRoutes(api, auth)

	go func() {
		log.Printf("Travel marketplace starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	if consumerDone != nil {
		select {
		case <-consumerDone:
		case <-shutdownCtx.Done():
		}
	}
}

func newEcho(bodyLimit string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.BodyLimit(bodyLimit))
	return e
}
