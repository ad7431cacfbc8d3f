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

	"recruiter-pipeline-backend/config"
	_ "recruiter-pipeline-backend/docs" // Important for Swagger
	v1 "recruiter-pipeline-backend/internal/delivery/http/v1"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/internal/repository/memory"
	"recruiter-pipeline-backend/internal/repository/postgres"
	"recruiter-pipeline-backend/internal/usecase"
	"recruiter-pipeline-backend/pkg/auth"
	"recruiter-pipeline-backend/pkg/database"
	"recruiter-pipeline-backend/pkg/logger"
	"recruiter-pipeline-backend/pkg/redis"
	"recruiter-pipeline-backend/pkg/security"
	"recruiter-pipeline-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Recruiter Pipeline API
// @version         1.0
// @description     Application tracking, funnel analytics and timelines for recruiters.
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
	gin.SetMode(cfg.GinMode)

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	secLogger := security.InitSecurityLogger("recruiter-pipeline", environment(cfg.GinMode))
	defer secLogger.Sync()
	logger.Log.Info("Starting recruiter pipeline backend", "port", cfg.Port, "store", cfg.StoreDriver)

	ctx := context.Background()

	// 3. Setup Record Store
	checks := map[string]usecase.Pinger{}
	var repo domain.ApplicationRepository
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Log.Warn("Using in-memory store; data is lost on restart")
		repo = memory.NewApplicationRepository()
	default:
		dbPool, err := database.NewPostgresConnection(ctx, database.PoolConfig{
			URL:            cfg.DBUrl,
			SimpleProtocol: cfg.DBSimpleProtocol,
		})
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := postgres.Migrate(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to migrate schema", "error", err)
			os.Exit(1)
		}
		repo = postgres.NewApplicationRepository(dbPool, cfg.StoreQueryTimeout)
	}
	checks["store"] = repo.Ping

	// 4. Setup Redis (optional; rate limiting falls back to memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
		}
	} else {
		checks["redis"] = redis.HealthCheck
		defer redis.Close()
	}

	// 5. Setup UseCases
	applicationUC := usecase.NewApplicationUsecase(repo, validation.New())
	analyticsUC := usecase.NewAnalyticsUsecase(repo, cfg.DashboardPollInterval)
	healthUC := usecase.NewHealthUsecase(checks)

	// 6. Setup Auth Provider (JWKS)
	var jwksProvider *auth.Provider
	if cfg.JWKSUrl != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSUrl)
	}

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ApplicationUC: applicationUC,
		AnalyticsUC:   analyticsUC,
		HealthUC:      healthUC,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
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
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func environment(ginMode string) string {
	if ginMode == gin.ReleaseMode {
		return "production"
	}
	return "development"
}
