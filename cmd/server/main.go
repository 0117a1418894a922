package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/borrowspace/service-sharing/internal/application"
	"github.com/borrowspace/service-sharing/internal/config"
	"github.com/borrowspace/service-sharing/internal/events"
	"github.com/borrowspace/service-sharing/internal/handler"
	"github.com/borrowspace/service-sharing/internal/logger"
	"github.com/borrowspace/service-sharing/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "sharing-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting sharing-server",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := db.AutoMigrate(
		&repository.UserModel{},
		&repository.RequestModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Initialize event publisher
	var publisher application.BookingEventPublisher = events.NopBookingPublisher{}
	if cfg.Kafka.Enabled {
		producer := events.NewProducer(cfg.Kafka.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = events.NewBookingPublisher(producer, log)
	}

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)

	// Initialize application services
	userService := application.NewUserService(userRepo, log)
	bookingService := application.NewBookingService(userRepo, itemRepo, bookingRepo, publisher, log)
	itemService := application.NewItemService(userRepo, itemRepo, commentRepo, bookingService, log)
	requestService := application.NewRequestService(userRepo, itemRepo, requestRepo, log)

	// Initialize HTTP handlers
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	requestHandler := handler.NewRequestHandler(requestService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(handler.Recovery(log))
	router.Use(handler.RequestLogger(log))
	router.Use(handler.RequestID())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db)
	healthHandler.Register(router)

	// Register routes
	userHandler.Register(router)
	itemHandler.Register(router)
	bookingHandler.Register(router)
	requestHandler.Register(router)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down sharing-server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("sharing-server stopped")
}
