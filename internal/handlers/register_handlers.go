package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/opsdesk/requisition_backend/cmd/docs"
	"github.com/opsdesk/requisition_backend/internal/adapters/storage"
	portssvc "github.com/opsdesk/requisition_backend/internal/core/ports/services"
	"github.com/opsdesk/requisition_backend/internal/middleware"
	"github.com/opsdesk/requisition_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	attachmentStore storage.AttachmentStore,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Public routes: legacy department flow and the dashboard metrics
	registerDepartmentRoutes(r, services.DepartmentToken)
	registerReportingRoutes(r, services.Reporting)

	// Setup API v1 routes behind the Authorization Gate
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.TokenVerifier))
	registerRequisitionRoutes(v1, services.Requisition, attachmentStore)
	registerMinuteRoutes(v1, services.Minute)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
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
