package handlers

import (
	"net/http"

	"github.com/SscSPs/job_tracker_app/cmd/docs"
	portssvc "github.com/SscSPs/job_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/job_tracker_app/internal/middleware"
	"github.com/SscSPs/job_tracker_app/internal/platform/config"
	"github.com/SscSPs/job_tracker_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Auth runs before the limiter so that limits apply per user.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret), middleware.RateLimit(rateLimiter))
	RegisterAPIRoutes(v1, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// RegisterAPIRoutes delegates route registration to the entity handlers.
func RegisterAPIRoutes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer) {
	application := registerApplicationRoutes(v1, services)
	registerLedgerRoutes(application, services.Ledger)
	registerInterviewRoutes(v1, application, services.Interview)
	registerReminderRoutes(v1, application, services.Reminder)
	registerCompanyRoutes(v1, services.Company)
	registerChartRoutes(v1, services.Chart)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
