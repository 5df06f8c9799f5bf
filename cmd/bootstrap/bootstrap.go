package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-clinic-workflow/config"
	deliveryHttp "go-clinic-workflow/internal/delivery/http"
	"go-clinic-workflow/internal/delivery/http/handler"
	"go-clinic-workflow/internal/delivery/http/middleware"
	"go-clinic-workflow/internal/infrastructure/cache"
	"go-clinic-workflow/internal/repository"
	"go-clinic-workflow/internal/service"
	"go-clinic-workflow/internal/usecase"
	"go-clinic-workflow/pkg/jwt"
	"go-clinic-workflow/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the clinic workflow service
type App struct {
	Config      *config.Config
	RedisClient *redis.Client
	Server      *http.Server

	mirror *service.Mirror
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

	// Initialize local store Redis
	redisClient, err := cache.NewRedisClient(cfg.LocalStore)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to local store: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	app.Server = app.initializeServer(cfg, redisClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize stores
	localStore := repository.NewRedisLocalStore(redisClient)
	remoteStore := repository.NewHTTPRemoteStore(cfg.RemoteStore)

	// Initialize services
	mirror := service.NewMirror(log)
	app.mirror = mirror
	reconciler := service.NewReconciler(localStore, remoteStore, log)
	encounters := service.NewEncounterService(localStore, remoteStore, mirror, log)
	sessions := service.NewSessionManager()
	renderer := service.NewTextPrescriptionRenderer(cfg.App.ClinicName)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, remoteStore, jwtService, redisClient, sessions)
	patientUsecase := usecase.NewPatientUsecase(log, localStore, remoteStore, reconciler, encounters, mirror)
	consultationUsecase := usecase.NewConsultationUsecase(log, localStore, remoteStore, reconciler, encounters, sessions, mirror, renderer)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, patientHandler, consultationHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
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

	// Drain in-flight remote mirrors before dropping connections
	if app.mirror != nil {
		app.mirror.Wait()
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections
func (app *App) Close() {
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
