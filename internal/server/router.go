package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/svitoratos/tangocrm-backend/internal/handlers"
	"github.com/svitoratos/tangocrm-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler        *handlers.AuthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	UserHandler        *handlers.UserHandler
	OpportunityHandler *handlers.OpportunityHandler
	ClientHandler      *handlers.ClientHandler
	CalendarHandler    *handlers.CalendarHandler
	ContentItemHandler *handlers.ContentItemHandler
	DashboardHandler   *handlers.DashboardHandler
	ContactHandler     *handlers.ContactHandler
	MediaDir           string
	TracingMiddleware  gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"https://gotangocrm.com",
			"https://www.gotangocrm.com",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	if cfg.TracingMiddleware != nil {
		router.Use(cfg.TracingMiddleware)
	}

	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/api/contact", cfg.ContactHandler.Submit)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)

	api := protected.Group("/api")
	// User
	api.GET("/user", cfg.UserHandler.GetMe)
	api.GET("/user/timezone", cfg.UserHandler.GetTimezone)
	api.PUT("/user/timezone", cfg.UserHandler.UpdateTimezone)
	api.PUT("/user/niche", cfg.UserHandler.UpdatePrimaryNiche)
	api.POST("/user/avatar", cfg.UserHandler.UploadAvatar)
	// Opportunities
	api.GET("/opportunities", cfg.OpportunityHandler.List)
	api.GET("/opportunities/board", cfg.OpportunityHandler.Board)
	api.POST("/opportunities", cfg.OpportunityHandler.Create)
	api.PUT("/opportunities", cfg.OpportunityHandler.Update)
	api.PUT("/opportunities/stage", cfg.OpportunityHandler.MoveStage)
	api.DELETE("/opportunities", cfg.OpportunityHandler.Delete)
	// Clients
	api.GET("/clients", cfg.ClientHandler.List)
	api.POST("/clients", cfg.ClientHandler.Create)
	api.PUT("/clients", cfg.ClientHandler.Update)
	api.DELETE("/clients", cfg.ClientHandler.Delete)
	api.POST("/clients/convert", cfg.ClientHandler.Convert)
	// Calendar events
	api.GET("/calendar-events", cfg.CalendarHandler.List)
	api.POST("/calendar-events", cfg.CalendarHandler.Create)
	api.PUT("/calendar-events", cfg.CalendarHandler.Update)
	api.DELETE("/calendar-events", cfg.CalendarHandler.Delete)
	// Content items
	api.GET("/content-items", cfg.ContentItemHandler.List)
	api.GET("/content-items/:id", cfg.ContentItemHandler.Get)
	api.POST("/content-items", cfg.ContentItemHandler.Create)
	api.PUT("/content-items/:id", cfg.ContentItemHandler.Update)
	api.DELETE("/content-items/:id", cfg.ContentItemHandler.Delete)
	// Dashboard
	api.GET("/dashboard", cfg.DashboardHandler.Overview)

	return router
}
