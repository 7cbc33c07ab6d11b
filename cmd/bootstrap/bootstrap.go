package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nueracare-api/config"
	deliveryHttp "nueracare-api/internal/delivery/http"
	"nueracare-api/internal/delivery/http/handler"
	"nueracare-api/internal/delivery/http/middleware"
	domainRepo "nueracare-api/internal/domain/repository"
	"nueracare-api/internal/infrastructure/cache"
	"nueracare-api/internal/infrastructure/database"
	"nueracare-api/internal/infrastructure/docstore"
	"nueracare-api/internal/repository"
	"nueracare-api/internal/service"
	"nueracare-api/internal/usecase"
	"nueracare-api/pkg/jwt"
	"nueracare-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	MongoClient *mongo.Client
	Store       domainRepo.DocumentStore
	Sessions    *service.WizardSessionRegistry
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize the document store
	store, err := app.openDocumentStore(context.Background())
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store
	logrus.WithField("driver", cfg.DocStore.Driver).Info("Document store ready")

	// Initialize all layers
	server, err := app.initializeServer()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Unknown LOG_LEVEL %q, using info", level)
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// openDocumentStore connects the backend selected by DOCSTORE_DRIVER.
func (app *App) openDocumentStore(ctx context.Context) (domainRepo.DocumentStore, error) {
	cfg := app.Config

	switch cfg.DocStore.Driver {
	case config.DriverPostgres:
		gormLevel := logger.Warn
		if cfg.App.Env == "development" {
			gormLevel = logger.Info
		}
		db, err := database.NewPostgresConnection(cfg.DB, gormLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		logrus.Info("Database connected successfully")

		if cfg.DB.Migrate {
			if err := database.RunMigrations(db); err != nil {
				return nil, err
			}
		}
		return docstore.NewPostgresStore(db), nil

	case config.DriverMongo:
		client, err := database.NewMongoConnection(cfg.Mongo)
		if err != nil {
			return nil, err
		}
		app.MongoClient = client
		logrus.Info("MongoDB connected successfully")

		store := docstore.NewMongoStore(database.DocumentCollection(client, cfg.Mongo))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("failed to create MongoDB indexes: %w", err)
		}
		return store, nil

	case config.DriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.RedisClient = client
		logrus.Info("Redis connected successfully")
		return docstore.NewRedisStore(client), nil

	case config.DriverSanity:
		return docstore.NewSanityStore(cfg.Sanity), nil

	case config.DriverMemory:
		logrus.Warn("Using the in-memory document store; data is lost on restart")
		return docstore.NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("unknown document store driver %q", cfg.DocStore.Driver)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() (*http.Server, error) {
	cfg := app.Config

	// Initialize JWT service
	jwtService, err := jwt.NewJWTService(cfg.Identity)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity key: %w", err)
	}

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	onboardingRepo := repository.NewOnboardingRepository(app.Store)
	userProfileRepo := repository.NewUserProfileRepository(app.Store)

	// Initialize services
	app.Sessions = service.NewWizardSessionRegistry(cfg.Onboarding.WizardSessionTTL, log)
	notifier := service.NewNotifier(cfg.Notifier.ResendAPIKey, cfg.Notifier.From, log)

	// Initialize usecases
	onboardingUsecase := usecase.NewOnboardingUsecase(log, onboardingRepo)
	userProfileUsecase := usecase.NewUserProfileUsecase(log, userProfileRepo)
	sessionRouterUsecase := usecase.NewSessionRouterUsecase(log, onboardingUsecase)
	overviewUsecase := usecase.NewOverviewUsecase(log, onboardingUsecase, userProfileUsecase, sessionRouterUsecase)
	wizardUsecase := usecase.NewWizardUsecase(log, customValidator, onboardingUsecase, app.Sessions, notifier, usecase.WizardPolicy{
		StrictWrites:          cfg.Onboarding.StrictWrites,
		CompleteRedirectDelay: cfg.Onboarding.CompleteRedirectDelay,
	})

	// Initialize handlers
	onboardingHandler := handler.NewOnboardingHandler(onboardingUsecase, customValidator)
	wizardHandler := handler.NewWizardHandler(wizardUsecase)
	sessionHandler := handler.NewSessionHandler(sessionRouterUsecase, overviewUsecase)
	profileHandler := handler.NewProfileHandler(userProfileUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware(nil)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(onboardingHandler, wizardHandler, sessionHandler, profileHandler, authMiddleware, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
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

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background workers and closes every backend connection.
func (app *App) Close() {
	if app.Sessions != nil {
		app.Sessions.Stop()
	}

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

	// Close MongoDB connection
	if app.MongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.MongoClient.Disconnect(ctx); err != nil {
			logrus.Warnf("Failed to disconnect MongoDB: %+v", err)
		}
	}
}
