package v1

import (
	"time"

	"jobboard-backend/config"
	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/domain"
	"jobboard-backend/internal/usecase"
	"jobboard-backend/pkg/auth"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/validation"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      usecase.HealthUsecase
	JWKSProvider  *auth.Provider
	Redis         *goredis.Client // optional; rate limits fall back to memory
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins(), deps.Config.IsRelease())) // CORS must be first!
	r.Use(ginzap.Ginzap(logger.Base(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.Base(), true))
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsRelease()))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	globalLimit := middleware.DefaultRateLimitConfig()
	globalLimit.Limit = deps.Config.RateLimitGlobalThreshold
	globalLimit.Window = time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(globalLimit, deps.Redis))

	v1 := r.Group("/v1")

	// System
	NewHealthHandler(v1, deps.HealthUC)
	v1.GET("/metrics", gin.WrapH(promhttp.Handler()))
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewAuthHandler(protected)
		NewApplicationHandler(v1, protected, deps.ApplicationUC,
			middleware.RateLimitMiddleware(middleware.ApplyRateLimitConfig(), deps.Redis))
	}

	return r
}
