// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"cineops/internal/auth"
	"cineops/internal/bookings"
	"cineops/internal/catalog"
	"cineops/internal/notifications"
	"cineops/internal/sales"
	"cineops/internal/sessions"
	"cineops/internal/shared/config"
	"cineops/internal/shared/database"
	"cineops/internal/shared/middleware"
	"cineops/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "cineops-backend"

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher

	// built by SetupRoutes, shared across modules
	authService    auth.Service
	catalogService catalog.Service
	salesService   sales.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes. Order matters: later
// modules depend on services built by earlier ones.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	staff := middleware.StaffGuard(r.config)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupCatalogRoutes(api, staff)
		r.setupSessionRoutes(api, staff)
		r.setupBookingRoutes(api, staff)
		r.setupSalesRoutes(api, staff)
	}
}

// SalesService is available once SetupRoutes has run.
func (r *Router) SalesService() sales.Service {
	return r.salesService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   serviceName,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   serviceName,
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"redis_cache":   r.db.Redis != nil,
			"kafka_events":  r.config.Kafka.Enabled,
			"auth_required": r.config.Auth.Enabled,
			"timestamp":     time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	r.authService = auth.NewService(authRepo, r.config)
	authController := auth.NewController(r.authService)

	auth.NewRouter(authController, r.config).SetupRoutes(rg)
}

// setupCatalogRoutes configures cinema, film and customer routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	r.catalogService = catalog.NewService(catalogRepo)

	if redisClient := r.db.GetRedisClient(); redisClient != nil {
		r.catalogService.SetCacheService(cache.NewService(redisClient))
	}

	catalog.SetupCatalogRoutes(rg, catalog.NewController(r.catalogService), staff)
}

func (r *Router) setupSessionRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc) {
	sessionRepo := sessions.NewRepository(r.db.GetPostgreSQL())
	sessionService := sessions.NewService(sessionRepo, r.catalogService)

	sessions.SetupSessionRoutes(rg, sessions.NewController(sessionService), staff)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.catalogService, r.publisher)

	bookings.SetupBookingRoutes(rg, bookings.NewController(bookingService), staff)
}

func (r *Router) setupSalesRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc) {
	salesRepo := sales.NewRepository(r.db.GetPostgreSQL())
	r.salesService = sales.NewService(salesRepo, r.catalogService, r.authService, r.publisher)

	sales.SetupSalesRoutes(rg, sales.NewController(r.salesService), staff)
}
