package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vr-therapy-platform/config"
	deliveryHttp "vr-therapy-platform/internal/delivery/http"
	"vr-therapy-platform/internal/delivery/http/handler"
	"vr-therapy-platform/internal/delivery/http/middleware"
	domainRepo "vr-therapy-platform/internal/domain/repository"
	"vr-therapy-platform/internal/infrastructure/cache"
	"vr-therapy-platform/internal/infrastructure/database"
	"vr-therapy-platform/internal/infrastructure/kvstore"
	"vr-therapy-platform/internal/infrastructure/seed"
	"vr-therapy-platform/internal/repository"
	"vr-therapy-platform/internal/service"
	"vr-therapy-platform/internal/usecase"
	"vr-therapy-platform/pkg/jwt"
	"vr-therapy-platform/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Store       domainRepo.KeyValueStore
	Adapter     *repository.StoreAdapter

	Sessions   *usecase.SessionManager
	Onboarding usecase.OnboardingUsecase
	Exporter   service.ReportExportService

	Server *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context, configFile string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	// Initialize key-value store
	if err := app.openStore(ctx); err != nil {
		app.Close()
		return nil, err
	}

	// Initialize all layers
	app.initialize()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// openStore connects the store driver selected by STORE_DRIVER
func (app *App) openStore(ctx context.Context) error {
	cfg := app.Config

	switch cfg.Store.Driver {
	case config.StoreDriverSQLite, config.StoreDriverPostgres:
		var (
			db  *gorm.DB
			err error
		)
		if cfg.Store.Driver == config.StoreDriverSQLite {
			db, err = database.NewSQLiteConnection(cfg.SQLite, cfg.App.Env)
		} else {
			db, err = database.NewPostgresConnection(cfg.DB, cfg.App.Env)
		}
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db

		store, err := kvstore.NewGormStore(db)
		if err != nil {
			return fmt.Errorf("failed to prepare store: %w", err)
		}
		app.Store = store

	case config.StoreDriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		app.RedisClient = client
		app.Store = kvstore.NewRedisStore(client, cfg.Store.KeyPrefix)

	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	app.Log.Infof("Store driver: %s", cfg.Store.Driver)
	return nil
}

func (app *App) seedSource() seed.Source {
	if app.Config.Seed.Source == config.SeedSourceHTTP {
		app.Log.Infof("Seeding from %s", app.Config.Seed.BaseURL)
		return seed.NewHTTPSource(app.Config.Seed.BaseURL, app.Config.Seed.Timeout, app.Log)
	}
	return seed.NewBundledSource()
}

// initialize wires repositories, use cases and the HTTP server
func (app *App) initialize() {
	cfg := app.Config
	log := app.Log

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	app.Adapter = repository.NewStoreAdapter(app.Store, app.seedSource(), log)
	therapistRepo := repository.NewTherapistRepository(app.Adapter)
	patientRepo := repository.NewPatientRepository(app.Adapter)
	sceneRepo := repository.NewVRSceneRepository(app.Adapter)
	reportRepo := repository.NewSessionReportRepository(app.Adapter)
	onboardingRepo := repository.NewOnboardingRepository(app.Adapter, patientRepo)
	auditRepo := repository.NewAuditLogRepository(app.Adapter)

	// Initialize services
	auditService := service.NewAuditService(log, auditRepo)
	app.Exporter = service.NewReportExportService(log, patientRepo, reportRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, therapistRepo, patientRepo)
	app.Sessions = usecase.NewSessionManager(log, app.Store, authUsecase, auditService)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, therapistRepo, reportRepo, onboardingRepo, auditService)
	reportUsecase := usecase.NewSessionReportUsecase(log, reportRepo, patientRepo, therapistRepo, sceneRepo, auditService)
	sceneUsecase := usecase.NewVRSceneUsecase(log, sceneRepo)
	app.Onboarding = usecase.NewOnboardingUsecase(log, onboardingRepo, patientRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(log, app.Sessions, customValidator, jwtService)
	patientHandler := handler.NewPatientHandler(log, patientUsecase, reportUsecase, app.Exporter, customValidator)
	sessionReportHandler := handler.NewSessionReportHandler(log, reportUsecase, patientUsecase, customValidator)
	vrSceneHandler := handler.NewVRSceneHandler(log, sceneUsecase)
	onboardingHandler := handler.NewOnboardingHandler(log, app.Onboarding, patientUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(log, auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.Sessions)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins...)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		sessionReportHandler,
		vrSceneHandler,
		onboardingHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)

	// Create server
	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run restores the session in the background, starts the HTTP server and
// handles graceful shutdown
func (app *App) Run(ctx context.Context) {
	go app.Sessions.Restore(ctx)

	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown(ctx)
}

// waitForShutdown blocks until an interrupt signal is received or ctx ends
func (app *App) waitForShutdown(ctx context.Context) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-ctx.Done():
	}

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if err := database.Close(app.DB); err != nil {
		app.Log.Warnf("Failed to close database: %v", err)
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
