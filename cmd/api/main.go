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

	"jobboard-backend/config"
	_ "jobboard-backend/docs" // Important for Swagger
	v1 "jobboard-backend/internal/delivery/http/v1"
	"jobboard-backend/internal/repository/postgres"
	"jobboard-backend/internal/storage"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/auth"
	"jobboard-backend/pkg/database"
	"jobboard-backend/pkg/logger"
	redisclient "jobboard-backend/pkg/redis"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Board Applications API
// @version         1.0
// @description     Job applications, application status and resume access.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	if err := logger.Init(cfg.IsRelease()); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Log.Infow("Starting job board backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolOptions{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Log.Errorw("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.RunMigrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			logger.Log.Errorw("Failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// 4. Setup Redis (optional)
	var rdb *goredis.Client
	rdb, err = redisclient.NewClient(ctx, redisclient.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	switch {
	case errors.Is(err, redisclient.ErrNotConfigured):
		rdb = nil
	case err != nil:
		logger.Log.Warnw("Redis unavailable, rate limiting falls back to memory", "error", err)
		rdb = nil
	default:
		defer rdb.Close()
	}

	// 5. Setup Resume Storage
	files, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Log.Errorw("Failed to init resume storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo)
	applicationUC := usecase.NewApplicationUsecase(usecase.ApplicationDeps{
		Applications: applicationRepo,
		Jobs:         jobRepo,
		Resumes:      resumeRepo,
		Companies:    companyRepo,
		Users:        userRepo,
		Files:        files,
		Validate:     validation.New(),
	})

	probes := map[string]usecase.Pinger{"database": dbPool}
	if rdb != nil {
		probes["redis"] = usecase.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	healthUC := usecase.NewHealthUsecase(probes)

	// 8. Setup Auth Provider (JWKS, optional)
	jwksProvider := auth.NewProvider(cfg.JWKSURL, &http.Client{Timeout: 10 * time.Second})

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ApplicationUC: applicationUC,
		HealthUC:      healthUC,
		JWKSProvider:  jwksProvider,
		Redis:         rdb,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorw("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
