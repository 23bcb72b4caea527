package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ariel200609/TuTurnoYa/config"
	deliveryHttp "github.com/Ariel200609/TuTurnoYa/internal/delivery/http"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/http/handler"
	"github.com/Ariel200609/TuTurnoYa/internal/delivery/http/middleware"
	"github.com/Ariel200609/TuTurnoYa/internal/domain/entity"
	"github.com/Ariel200609/TuTurnoYa/internal/infrastructure/cache"
	"github.com/Ariel200609/TuTurnoYa/internal/infrastructure/database"
	"github.com/Ariel200609/TuTurnoYa/internal/repository"
	"github.com/Ariel200609/TuTurnoYa/internal/service"
	"github.com/Ariel200609/TuTurnoYa/internal/usecase"
	"github.com/Ariel200609/TuTurnoYa/pkg/clock"
	"github.com/Ariel200609/TuTurnoYa/pkg/jwt"
	"github.com/Ariel200609/TuTurnoYa/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Sweeper     *service.SweeperService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server, app.Sweeper = initializeServer(cfg, db, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.User{},
		&entity.VenueOwner{},
		&entity.Venue{},
		&entity.Court{},
		&entity.Booking{},
		&entity.BookingCounter{},
		&entity.Notification{},
	)
	if err != nil {
		return err
	}

	// Partial unique index over active statuses: the storage backstop for
	// the no-double-booking invariant. Cancelled and rejected rows keep
	// their slot values without blocking rebooking.
	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_active_slot
		ON bookings (court_id, booking_date, start_time)
		WHERE status IN ('pending', 'confirmed', 'paid')
	`).Error
}

// initializeServer wires every layer and returns the HTTP server plus the
// background sweeper.
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.SweeperService) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize clock
	clk := clock.NewSystem()

	// Initialize repositories
	bookingRepo := repository.NewBookingRepository()
	courtRepo := repository.NewCourtRepository()
	venueRepo := repository.NewVenueRepository()
	userRepo := repository.NewUserRepository()
	notificationRepo := repository.NewNotificationRepository()
	counterRepo := repository.NewBookingCounterRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	notificationService := service.NewNotificationService(db, log, notificationRepo)
	sweeper := service.NewSweeperService(db, log, clk, bookingRepo, notificationService, cfg.Booking)

	// Initialize usecases
	availabilityUsecase := usecase.NewAvailabilityUsecase(db, log, clk, courtRepo, bookingRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, clk, bookingRepo, courtRepo, userRepo, counterRepo, notificationService)
	lifecycleUsecase := usecase.NewBookingLifecycleUsecase(db, log, clk, bookingRepo, courtRepo, venueRepo, userRepo, notificationService)
	courtUsecase := usecase.NewCourtUsecase(db, log, courtRepo, bookingRepo)

	// Initialize handlers
	bookingHandler := handler.NewBookingHandler(bookingUsecase, lifecycleUsecase, customValidator)
	courtHandler := handler.NewCourtHandler(availabilityUsecase, courtUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(bookingHandler, courtHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, sweeper
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	app.Sweeper.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Sweeper.Stop()

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
