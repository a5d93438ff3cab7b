package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/campusreg/internal/app/controllers"
	"github.com/yigit/campusreg/internal/app/models"
	"github.com/yigit/campusreg/internal/middleware"
)

// HealthCheck reports whether a backing dependency is reachable
type HealthCheck func(ctx context.Context) error

const healthTimeout = 2 * time.Second

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	institutionController *controllers.InstitutionController,
	authMiddleware *middleware.AuthMiddleware,
	health HealthCheck,
) {
	router.GET("/health", healthHandler(health))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public institution routes ---
	institutions := v1.Group("/institutions")
	{
		institutions.GET("", institutionController.ListInstitutions)
		institutions.GET("/:id", institutionController.GetInstitutionByID)
		institutions.POST("", institutionController.RegisterInstitution)
		institutions.PUT("/:id", institutionController.UpdateInstitution)
	}

	// --- Admin routes ---
	admin := institutions.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
	{
		admin.PUT("/:id/review", institutionController.ReviewInstitution)
		admin.PUT("/:id/promote", institutionController.PromoteInstitution)
	}
}

func healthHandler(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if check != nil {
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
