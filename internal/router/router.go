package router

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/gabbyferm/savory/backend/internal/api"
	"github.com/gabbyferm/savory/backend/internal/middleware"
	"github.com/gabbyferm/savory/backend/internal/service"
	"github.com/gabbyferm/savory/backend/internal/storage"
)

// Services bundles the business services the API exposes
type Services struct {
	Auth       service.IAuthService
	Profile    service.IProfileService
	Recipe     service.IRecipeService
	Ingredient service.IIngredientService
	Category   service.ICategoryService
	Dashboard  service.IDashboardService
}

// Options configures the cross-cutting parts of the router
type Options struct {
	CORSOrigins []string

	// Rate limiting, a limit of 0 disables the corresponding limiter.
	// Limits are shared through Redis when a client is set.
	RateLimitWindow time.Duration
	AuthRateLimit   int
	WriteRateLimit  int
	Redis           *redis.Client

	// Images is served from disk when it is a local store with a path
	// base URL
	Images storage.ImageStore

	Health func(ctx context.Context) error
}

// SetupRouter configures the application routes
func SetupRouter(svc Services, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Metrics())
	if len(opts.CORSOrigins) > 0 {
		router.Use(middleware.CORS(opts.CORSOrigins))
	}

	router.GET("/health", api.NewHealthHandler(opts.Health).HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if local, ok := opts.Images.(*storage.LocalStore); ok && strings.HasPrefix(local.BaseURL(), "/") {
		router.Static(local.BaseURL(), local.Dir())
	}

	authLimit := rateLimit(opts, opts.AuthRateLimit, "auth", middleware.ByClientIP)
	writeLimit := rateLimit(opts, opts.WriteRateLimit, "write", middleware.ByUser)

	// API v1 routes
	v1 := router.Group("/api/v1")

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))

	api.NewAuthHandler(svc.Auth).RegisterRoutes(v1, protected, authLimit...)
	api.NewProfileHandler(svc.Profile).RegisterRoutes(protected)
	api.NewRecipeHandler(svc.Recipe).RegisterRoutes(protected, writeLimit...)
	api.NewIngredientHandler(svc.Ingredient).RegisterRoutes(protected, writeLimit...)
	api.NewCategoryHandler(svc.Category).RegisterRoutes(protected)
	api.NewDashboardHandler(svc.Dashboard).RegisterRoutes(protected)

	return router
}

func rateLimit(opts Options, limit int, scope string, keyFn middleware.KeyFunc) []gin.HandlerFunc {
	if limit <= 0 {
		return nil
	}
	cfg := middleware.RateLimitConfig{
		Window:    opts.RateLimitWindow,
		Limit:     limit,
		KeyPrefix: "savory:ratelimit",
	}

	var limiter middleware.Limiter
	if opts.Redis != nil {
		limiter = middleware.NewRedisLimiter(opts.Redis, cfg)
	} else {
		limiter = middleware.NewLocalLimiter(cfg)
	}
	return []gin.HandlerFunc{middleware.RateLimit(limiter, scope, keyFn)}
}
