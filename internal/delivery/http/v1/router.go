package v1

import (
	"recruiter-pipeline-backend/config"
	"recruiter-pipeline-backend/internal/delivery/http/middleware"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/internal/usecase"
	"recruiter-pipeline-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ApplicationUC domain.ApplicationUsecase
	AnalyticsUC   domain.AnalyticsUsecase
	HealthUC      usecase.HealthUsecase
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.GinMode == gin.ReleaseMode)) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Everything below is scoped to the token's owner
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	protected.Use(middleware.RateLimitMiddleware(middleware.RateLimitFromConfig(deps.Config)))
	{
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewAnalyticsHandler(protected, deps.AnalyticsUC)
	}

	return r
}
