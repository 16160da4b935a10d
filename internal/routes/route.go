package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/watchparty/internal/container"
	"github.com/joshua-takyi/watchparty/internal/handlers"
	"github.com/joshua-takyi/watchparty/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.GET("/health", handlers.Health())

	// public pages
	r.GET("/", handlers.Home(container.PartyService))
	r.GET("/genre/:name", handlers.ListGenre(container.PartyService))
	r.POST("/host", handlers.HostParty(container.PartyService))

	api := r.Group("/api")
	{
		api.GET("/upcoming", handlers.ListUpcoming(container.PartyService))
	}

	adminKey := middleware.AdminKey(container.AdminService)

	r.GET("/admin", adminKey, handlers.AdminPanel(container.AdminService, container.PartyService))

	adminRoutes := api.Group("/admin", adminKey)
	{
		adminRoutes.GET("/parties", handlers.AdminListParties(container.AdminService))
		adminRoutes.PUT("/parties/:id", handlers.AdminUpdateParty(container.AdminService))
		adminRoutes.DELETE("/parties/:id", handlers.AdminDeleteParty(container.AdminService))
	}

	return r
}
