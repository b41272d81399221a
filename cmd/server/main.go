package main

import (
	"alcyxob/ai-trainer/internal/api"
	"alcyxob/ai-trainer/internal/config"
	"alcyxob/ai-trainer/internal/generation"
	"alcyxob/ai-trainer/internal/logger"
	"alcyxob/ai-trainer/internal/repository/mongo"
	"alcyxob/ai-trainer/internal/service"
	"alcyxob/ai-trainer/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title AI Trainer API
// @version 1.0
// @description Generates personal workout plans and tracks how they went.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	logger.Initialize(logger.ParseLevel(cfg.Log.Level), cfg.Log.Dev)
	logger.Info("Starting AI Trainer server", "address", cfg.Server.Address, "model", cfg.Generation.Model)

	if cfg.JWT.Secret == "" {
		log.Fatal("FATAL: jwt.secret (JWT_SECRET) must be set")
	}
	if cfg.Generation.APIKey == "" {
		log.Fatal("FATAL: generation.api_key (GENERATION_API_KEY) must be set")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		logger.Info("Disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("Failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("Database connection established", "database", cfg.Database.Name)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		logger.Info("Index creation process completed")
	}()

	// --- Object storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
		logger.Info("Object storage enabled", "bucket", cfg.S3.BucketName)
	} else {
		logger.Warn("Object storage not configured; plan export and output archiving are disabled")
	}

	// --- Generation client ---
	gemini, err := generation.NewGeminiGenerator(context.Background(), cfg.Generation.APIKey, cfg.Generation.Model)
	if err != nil {
		log.Fatalf("FATAL: Failed to create Gemini client: %v", err)
	}
	defer gemini.Close()
	generator := generation.NewClient(gemini, cfg.Generation.Timeout, cfg.Generation.RetryBackoff)

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	equipmentRepo := mongo.NewMongoEquipmentRepository(appDB)
	locationRepo := mongo.NewMongoLocationRepository(appDB)
	weightRepo := mongo.NewMongoWeightRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	planRepos := service.PlanRepositories{
		Tx:        mongo.NewMongoTransactor(dbClient),
		Profiles:  profileRepo,
		Locations: locationRepo,
		Equipment: equipmentRepo,
		Plans:     mongo.NewMongoPlanRepository(appDB),
		Queries:   mongo.NewMongoQueryRepository(appDB),
		Sessions:  sessionRepo,
		Exercises: exerciseRepo,
	}

	// --- Initialize Services ---
	locks := service.NewGroupLocks()
	history := service.NewHistorySelector(weightRepo, sessionRepo, exerciseRepo, cfg.History.Weights, cfg.History.Sessions)
	authService := service.NewAuthService(userRepo, profileRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo, locationRepo, weightRepo)
	catalogService := service.NewCatalogService(equipmentRepo, locationRepo)
	planService := service.NewPlanService(planRepos, history, generator, fileStorage, locks)
	regenService := service.NewRegenerationService(planRepos, generator, fileStorage, locks)

	// --- Initialize Gin Engine ---
	if !cfg.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default() // Includes Logger and Recovery middleware

	limiter := api.NewUserRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	api.SetupRoutes(router, cfg.JWT.Secret, limiter, authService, profileService, catalogService, planService, regenService)

	// --- Start HTTP Server ---
	// Generation may take two full attempts plus the backoff.
	writeTimeout := 2*cfg.Generation.Timeout + cfg.Generation.RetryBackoff + 10*time.Second
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exiting")
}
