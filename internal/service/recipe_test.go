package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/testhelpers"
	"github.com/gabbyferm/savory/backend/internal/types"
)

func TestCreateRecipe(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	req := f.request(t, "Carbonara", "Dinner", 15, line{"Pasta", 200}, line{"Eggs", 2}, line{"Parmesan", 50})
	resp, err := f.svc.CreateRecipe(ctx, f.alice.ID, req)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, f.alice.ID, resp.UserID)
	assert.Equal(t, "Carbonara", resp.Title)
	assert.Equal(t, "Dinner", resp.CategoryName)
	assert.Nil(t, resp.ImagePath)
	assert.False(t, resp.CreatedAt.IsZero())

	require.Len(t, resp.Ingredients, 3)
	assert.Equal(t, "Pasta", resp.Ingredients[0].IngredientName)
	assert.Equal(t, 200.0, resp.Ingredients[0].Quantity)
	assert.Equal(t, "g", resp.Ingredients[0].Unit)
	assert.Equal(t, "Eggs", resp.Ingredients[1].IngredientName)
	assert.Equal(t, "Parmesan", resp.Ingredients[2].IngredientName)
}

func TestCreateRecipeValidation(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*types.RecipeRequest)
		want   string
	}{
		{
			name:   "missing title",
			mutate: func(r *types.RecipeRequest) { r.Title = "" },
			want:   "title is required",
		},
		{
			name:   "no servings",
			mutate: func(r *types.RecipeRequest) { r.Servings = 0 },
			want:   "servings",
		},
		{
			name:   "negative quantity",
			mutate: func(r *types.RecipeRequest) { r.Ingredients[0].Quantity = -1 },
			want:   "ingredients[0].quantity",
		},
		{
			name:   "no ingredients",
			mutate: func(r *types.RecipeRequest) { r.Ingredients = nil },
			want:   "ingredients",
		},
		{
			name: "duplicate ingredient",
			mutate: func(r *types.RecipeRequest) {
				r.Ingredients = append(r.Ingredients, r.Ingredients[0])
			},
			want: "more than once",
		},
		{
			name:   "unknown category",
			mutate: func(r *types.RecipeRequest) { r.CategoryID = unknownID },
			want:   "categoryId",
		},
		{
			name:   "unknown ingredient",
			mutate: func(r *types.RecipeRequest) { r.Ingredients[0].IngredientID = unknownID },
			want:   "ingredients[0].ingredientId",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(t, "Soup", "Lunch", 20, line{"Onion", 1})
			tt.mutate(req)

			_, err := f.svc.CreateRecipe(ctx, f.alice.ID, req)
			requireKind(t, err, apperr.KindValidation)
			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Contains(t, appErr.Errors[0], tt.want)
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&model.Recipe{}).Count(&count).Error)
	assert.Zero(t, count, "failed creates must not leave rows behind")
}

func TestCreateRecipeRequiresCaller(t *testing.T) {
	f := newRecipeFixture(t)
	_, err := f.svc.CreateRecipe(context.Background(), uuid.Nil, f.request(t, "Soup", "Lunch", 20))
	requireKind(t, err, apperr.KindNotAuthenticated)
}

func TestGetRecipeOwnership(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	recipe := f.create(t, f.alice, f.request(t, "Pancakes", "Breakfast", 10, line{"Flour", 200}, line{"Milk", 300}))

	got, err := f.svc.GetRecipe(ctx, f.alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, got.ID)
	assert.Len(t, got.Ingredients, 2)

	_, err = f.svc.GetRecipe(ctx, f.bob.ID, recipe.ID)
	requireKind(t, err, apperr.KindNotFound)

	_, err = f.svc.GetRecipe(ctx, f.alice.ID, unknownID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	recipe := f.create(t, f.alice, f.request(t, "Risotto", "Dinner", 30, line{"Rice", 100}, line{"Butter", 50}))

	req := f.request(t, "Lemon Risotto", "Lunch", 35, line{"Rice", 100})
	updated, err := f.svc.UpdateRecipe(ctx, f.alice.ID, recipe.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Lemon Risotto", updated.Title)
	assert.Equal(t, "Lunch", updated.CategoryName)
	assert.Equal(t, 35, updated.CookTime)

	reloaded, err := f.svc.GetRecipe(ctx, f.alice.ID, recipe.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Ingredients, 1)
	assert.Equal(t, "Rice", reloaded.Ingredients[0].IngredientName)
	assert.Equal(t, 100.0, reloaded.Ingredients[0].Quantity)

	var lines int64
	require.NoError(t, f.db.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&lines).Error)
	assert.Equal(t, int64(1), lines)
}

func TestUpdateRecipeRejectsOtherUsers(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	recipe := f.create(t, f.alice, f.request(t, "Risotto", "Dinner", 30, line{"Rice", 100}))

	_, err := f.svc.UpdateRecipe(ctx, f.bob.ID, recipe.ID, f.request(t, "Stolen", "Dinner", 1))
	requireKind(t, err, apperr.KindNotFound)

	got, err := f.svc.GetRecipe(ctx, f.alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Risotto", got.Title)
}

func TestUpdateRecipeRollsBackOnBadReference(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	recipe := f.create(t, f.alice, f.request(t, "Risotto", "Dinner", 30, line{"Rice", 100}))

	req := f.request(t, "Broken", "Dinner", 30, line{"Rice", 100})
	req.Ingredients[0].IngredientID = unknownID
	_, err := f.svc.UpdateRecipe(ctx, f.alice.ID, recipe.ID, req)
	requireKind(t, err, apperr.KindValidation)

	got, err := f.svc.GetRecipe(ctx, f.alice.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Risotto", got.Title)
	assert.Len(t, got.Ingredients, 1)
}

func TestDeleteRecipe(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()
	recipe := f.create(t, f.alice, f.request(t, "Toast", "Breakfast", 3, line{"Butter", 10}))

	err := f.svc.DeleteRecipe(ctx, f.bob.ID, recipe.ID)
	requireKind(t, err, apperr.KindNotFound)

	require.NoError(t, f.svc.DeleteRecipe(ctx, f.alice.ID, recipe.ID))

	_, err = f.svc.GetRecipe(ctx, f.alice.ID, recipe.ID)
	requireKind(t, err, apperr.KindNotFound)

	var lines int64
	require.NoError(t, f.db.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&lines).Error)
	assert.Zero(t, lines)

	err = f.svc.DeleteRecipe(ctx, f.alice.ID, recipe.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestRecipeLifecycle(t *testing.T) {
	f := newRecipeFixture(t)
	ctx := context.Background()

	created := f.create(t, f.alice, f.request(t, "Pasta Bake", "Dinner", 40, line{"Pasta", 250}, line{"Tomato", 3}))

	page, err := f.svc.ListRecipes(ctx, f.alice.ID, types.RecipeQuery{SearchTerm: "bake", PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)

	others, err := f.svc.ListRecipes(ctx, f.bob.ID, types.RecipeQuery{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, others.Items)
	assert.Zero(t, others.TotalCount)

	_, err = f.svc.UpdateRecipe(ctx, f.alice.ID, created.ID, f.request(t, "Pasta Bake", "Dinner", 45, line{"Pasta", 300}))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteRecipe(ctx, f.alice.ID, created.ID))
	page, err = f.svc.ListRecipes(ctx, f.alice.ID, types.RecipeQuery{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	// reference data is untouched
	testhelpers.Ingredient(t, f.db, "Pasta")
}
