package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/types"
)

const recentRecipeCount = 5

// DashboardService summarises the caller's recipe collection
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// GetStats computes the dashboard aggregates. The queries are independent
// and run concurrently; the first failure cancels the rest.
func (s *DashboardService) GetStats(ctx context.Context, callerID uuid.UUID) (*types.DashboardStats, error) {
	if callerID == uuid.Nil {
		return nil, apperr.NotAuthenticated("")
	}

	var (
		total  int64
		counts []struct {
			Name  string
			Count int64
		}
		avgs struct {
			AvgCook  float64
			AvgTotal float64
		}
		recent []model.Recipe
	)

	g, gctx := errgroup.WithContext(ctx)
	owned := func() *gorm.DB {
		return s.db.WithContext(gctx).Model(&model.Recipe{}).Where("recipes.user_id = ?", callerID)
	}

	g.Go(func() error {
		return owned().Count(&total).Error
	})
	g.Go(func() error {
		return owned().
			Select("categories.name AS name, COUNT(recipes.id) AS count").
			Joins("JOIN categories ON categories.id = recipes.category_id").
			Group("categories.name").
			Scan(&counts).Error
	})
	g.Go(func() error {
		return owned().
			Select("COALESCE(AVG(recipes.cook_time), 0) AS avg_cook, COALESCE(AVG(recipes.prep_time + recipes.cook_time), 0) AS avg_total").
			Scan(&avgs).Error
	})
	g.Go(func() error {
		return preloadRecipe(owned()).
			Order(defaultRecipeOrder).
			Limit(recentRecipeCount).
			Find(&recent).Error
	})

	if err := g.Wait(); err != nil {
		return nil, apperr.Unexpected("failed to compute dashboard stats", err)
	}

	stats := &types.DashboardStats{
		TotalRecipes:      total,
		RecipesByCategory: make(map[string]int64, len(counts)),
		AverageCookTime:   roundTenth(avgs.AvgCook),
		AverageTotalTime:  roundTenth(avgs.AvgTotal),
		RecentRecipes:     toRecipeResponses(recent),
	}
	for _, c := range counts {
		if c.Count > 0 {
			stats.RecipesByCategory[c.Name] = c.Count
		}
	}
	return stats, nil
}

func roundTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
