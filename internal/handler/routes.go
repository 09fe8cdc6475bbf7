package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/gtd_catalog/internal/middleware"
	"github.com/GTDGit/gtd_catalog/internal/web"
)

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Product   *ProductHandler
	Dashboard *DashboardHandler
	Page      *PageHandler
	SSE       *SSEHandler
}

// NewRouter builds the engine with templates, global middleware and all routes.
func NewRouter(handlers *Handlers, authMiddleware *middleware.AuthMiddleware, corsHosts []string) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(corsHosts...))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, authMiddleware)
	return router, nil
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, authMiddleware *middleware.AuthMiddleware) {
	router.StaticFS("/static", web.Static())

	// Screens
	router.GET("/", authMiddleware.Optional(), handlers.Page.Root)
	router.GET("/login", authMiddleware.Optional(), handlers.Page.LoginForm)
	router.POST("/login", authMiddleware.Optional(), handlers.Page.Login)
	router.POST("/logout", authMiddleware.Optional(), handlers.Page.Logout)

	dashboard := router.Group("/dashboard")
	dashboard.Use(authMiddleware.Page())
	{
		dashboard.GET("", handlers.Page.Dashboard)
		dashboard.GET("/products", handlers.Page.Products)
		dashboard.GET("/products/add", handlers.Page.AddForm)
		dashboard.POST("/products/add", handlers.Page.Add)
		dashboard.GET("/products/:id", handlers.Page.ProductDetail)
		dashboard.GET("/products/edit/:id", handlers.Page.EditForm)
		dashboard.POST("/products/edit/:id", handlers.Page.Edit)
		dashboard.POST("/products/:id/delete", handlers.Page.Delete)
	}

	// JSON API
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.POST("/v1/auth/login", authMiddleware.Optional(), handlers.Auth.Login)

	api := router.Group("/v1")
	api.Use(authMiddleware.API())
	{
		api.POST("/auth/logout", handlers.Auth.Logout)
		api.GET("/auth/me", handlers.Auth.Me)

		api.GET("/products", handlers.Product.GetProducts)
		api.GET("/products/categories", handlers.Product.GetCategories)
		api.GET("/products/category/:category", handlers.Product.GetProductsByCategory)
		api.GET("/products/:id", handlers.Product.GetProduct)
		api.POST("/products", handlers.Product.CreateProduct)
		api.PUT("/products/:id", handlers.Product.UpdateProduct)
		api.DELETE("/products/:id", handlers.Product.DeleteProduct)

		api.GET("/dashboard/stats", handlers.Dashboard.GetStats)
		api.GET("/events", handlers.SSE.Stream)
	}

	router.NoRoute(authMiddleware.Optional(), handlers.Page.NotFound)
}
