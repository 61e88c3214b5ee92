package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/config"
	"github.com/platemate/platemate-backend/internal/api"
	"github.com/platemate/platemate-backend/internal/database"
	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/router"
	"github.com/platemate/platemate-backend/internal/service"
)

// Server wires configuration, storage and services into an HTTP server.
type Server struct {
	cfg   *config.Config
	http  *http.Server
	db    *gorm.DB
	redis *redis.Client
}

// New builds the full application from configuration.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("redis init: %w", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	catalogService := service.NewCatalogService(db)

	cartStore := service.NewRedisCartStore(redisClient, cfg.CartTTL)
	cartService := service.NewCartService(db, cartStore)

	placementLock := service.NewRedisPlacementLock(redisClient, 30*time.Second)
	orderService := service.NewOrderService(db, cartStore, placementLock, cfg.OrderUseEffectivePrice)

	reviewService := service.NewReviewService(db)
	emailService := service.NewEmailService(cfg)
	feedbackService := service.NewFeedbackService(db, emailService)
	analyticsService := service.NewAnalyticsService(db)

	var photoService service.IPhotoService
	s3Cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Printf("S3 unavailable, photo uploads disabled: %v", err)
	} else {
		photoService = service.NewPhotoService(s3Cfg)
	}

	handlers := router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Profile:    api.NewProfileHandler(profileService, authService),
		Restaurant: api.NewRestaurantHandler(catalogService, photoService, authService, analyticsService),
		Cart:       api.NewCartHandler(cartService, authService),
		Order: api.NewOrderHandler(orderService, authService,
			middleware.NewOrderPlacementRateLimiter(redisClient)),
		Review: api.NewReviewHandler(reviewService, authService),
		Feedback: api.NewFeedbackHandler(feedbackService, authService,
			middleware.NewFeedbackRateLimiter(redisClient)),
		Dashboard: api.NewDashboardHandler(analyticsService, orderService, feedbackService, authService),
	}

	engine := router.SetupRouter(handlers, nil)

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
		db:    db,
		redis: redisClient,
	}, nil
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("redis close: %v", err)
		}
	}
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("database close: %v", err)
			}
		}
	}
	return nil
}
