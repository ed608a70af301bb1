package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/dietplan/backend/config"
	"github.com/pageza/dietplan/backend/internal/api"
	"github.com/pageza/dietplan/backend/internal/middleware"
	"github.com/pageza/dietplan/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, dietService service.IDietPlanService) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Metrics wrap everything so recovered panics are still counted
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	api.RegisterRoutes(router, dietService)

	return router
}
