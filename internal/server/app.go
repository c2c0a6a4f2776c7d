package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/config"
	"github.com/gabbyferm/savory/backend/internal/database"
	"github.com/gabbyferm/savory/backend/internal/router"
	"github.com/gabbyferm/savory/backend/internal/service"
	"github.com/gabbyferm/savory/backend/internal/storage"
	"github.com/gabbyferm/savory/backend/internal/validation"
)

// Dependencies are the external resources the API runs on. Redis is
// optional.
type Dependencies struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Images storage.ImageStore
}

// NewHandler wires the services and routes of the API. opts apply to every
// service that accepts them.
func NewHandler(cfg *config.Config, deps Dependencies, opts ...service.Option) *gin.Engine {
	v := validation.New()

	authCfg := service.AuthConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}
	recipeOpts := append([]service.Option{service.WithMaxImageSize(cfg.Storage.MaxImageSize)}, opts...)

	services := router.Services{
		Auth:       service.NewAuthService(deps.DB, authCfg, v, opts...),
		Profile:    service.NewProfileService(deps.DB, v, opts...),
		Recipe:     service.NewRecipeService(deps.DB, deps.Images, v, recipeOpts...),
		Ingredient: service.NewIngredientService(deps.DB, v),
		Category:   service.NewCategoryService(deps.DB),
		Dashboard:  service.NewDashboardService(deps.DB),
	}

	return router.SetupRouter(services, router.Options{
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitWindow: cfg.RateLimitWindow,
		AuthRateLimit:   cfg.AuthRateLimit,
		WriteRateLimit:  cfg.WriteRateLimit,
		Redis:           deps.Redis,
		Images:          deps.Images,
		Health: func(ctx context.Context) error {
			return database.HealthCheck(ctx, deps.DB)
		},
	})
}
