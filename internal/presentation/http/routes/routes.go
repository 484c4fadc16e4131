package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/salestrack/salestrack-api/internal/config"
	"github.com/salestrack/salestrack-api/internal/presentation/http/handler"
	"github.com/salestrack/salestrack-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Order     *handler.OrderHandler
	Analytics *handler.AnalyticsHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   middleware.DefaultRateLimiterConfig().CleanupInterval,
		EntryTTL:          middleware.DefaultRateLimiterConfig().EntryTTL,
	})
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerProductRoutes(v1, h)
		registerCustomerRoutes(v1, h)
		registerOrderRoutes(v1, h)
		registerAnalyticsRoutes(v1, h)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
	}
}

func registerOrderRoutes(v1 *gin.RouterGroup, h *Handlers) {
	orders := v1.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
	}
}

func registerAnalyticsRoutes(v1 *gin.RouterGroup, h *Handlers) {
	analytics := v1.Group("/analytics")
	{
		analytics.GET("/sales-over-time", h.Analytics.SalesOverTime)
		analytics.GET("/top-products", h.Analytics.TopProducts)
		analytics.GET("/category-summary", h.Analytics.CategorySummary)
		analytics.GET("/sales-csv", h.Analytics.SalesCSV)
	}
}
