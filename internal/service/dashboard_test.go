package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/service"
)

func TestDashboardStatsEmpty(t *testing.T) {
	f := newRecipeFixture(t)
	svc := service.NewDashboardService(f.db)

	stats, err := svc.GetStats(context.Background(), f.alice.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRecipes)
	assert.Empty(t, stats.RecipesByCategory)
	assert.Zero(t, stats.AverageCookTime)
	assert.Zero(t, stats.AverageTotalTime)
	assert.NotNil(t, stats.RecentRecipes)
	assert.Empty(t, stats.RecentRecipes)
}

func TestDashboardStats(t *testing.T) {
	f := newRecipeFixture(t)
	svc := service.NewDashboardService(f.db)

	// prep time is 5 for every fixture recipe
	f.create(t, f.alice, f.request(t, "Porridge", "Breakfast", 10))
	f.create(t, f.alice, f.request(t, "Stew", "Dinner", 20))
	for i := 1; i <= 5; i++ {
		f.create(t, f.alice, f.request(t, fmt.Sprintf("Salad %d", i), "Lunch", 25))
	}
	f.create(t, f.bob, f.request(t, "Roast", "Dinner", 120))

	stats, err := svc.GetStats(context.Background(), f.alice.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(7), stats.TotalRecipes)
	assert.Equal(t, map[string]int64{"Breakfast": 1, "Dinner": 1, "Lunch": 5}, stats.RecipesByCategory)
	// (10 + 20 + 5*25) / 7 = 22.14
	assert.Equal(t, 22.1, stats.AverageCookTime)
	assert.Equal(t, 27.1, stats.AverageTotalTime)

	require.Len(t, stats.RecentRecipes, 5)
	assert.Equal(t, "Salad 5", stats.RecentRecipes[0].Title)
	assert.Equal(t, "Salad 1", stats.RecentRecipes[4].Title)
	for _, r := range stats.RecentRecipes {
		assert.Equal(t, f.alice.ID, r.UserID)
		assert.NotEmpty(t, r.Ingredients)
	}
}

func TestDashboardStatsRequiresCaller(t *testing.T) {
	f := newRecipeFixture(t)
	_, err := service.NewDashboardService(f.db).GetStats(context.Background(), uuid.Nil)
	requireKind(t, err, apperr.KindNotAuthenticated)
}
