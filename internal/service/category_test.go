package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabbyferm/savory/backend/internal/service"
)

func TestListCategories(t *testing.T) {
	f := newRecipeFixture(t)
	svc := service.NewCategoryService(f.db)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)

	var names []string
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Beverage", "Breakfast", "Dessert", "Dinner", "Lunch", "Snack"}, names)
}

func TestListCategoriesWithCounts(t *testing.T) {
	f := newRecipeFixture(t)
	svc := service.NewCategoryService(f.db)

	f.create(t, f.alice, f.request(t, "Steak", "Dinner", 20))
	f.create(t, f.alice, f.request(t, "Curry", "Dinner", 40))
	f.create(t, f.alice, f.request(t, "Brownies", "Dessert", 25))
	f.create(t, f.bob, f.request(t, "Lasagne", "Dinner", 60))

	counts, err := svc.ListCategoriesWithCounts(context.Background(), f.alice.ID)
	require.NoError(t, err)
	require.Len(t, counts, 6)

	got := make(map[string]int64, len(counts))
	for _, c := range counts {
		got[c.Name] = c.RecipeCount
	}
	assert.Equal(t, map[string]int64{
		"Beverage":  0,
		"Breakfast": 0,
		"Dessert":   1,
		"Dinner":    2,
		"Lunch":     0,
		"Snack":     0,
	}, got)
	assert.Equal(t, "Beverage", counts[0].Name)
}
