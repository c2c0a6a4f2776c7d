package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/service"
	"github.com/gabbyferm/savory/backend/internal/storage"
	"github.com/gabbyferm/savory/backend/internal/testhelpers"
	"github.com/gabbyferm/savory/backend/internal/types"
	"github.com/gabbyferm/savory/backend/internal/validation"
)

// testClock advances by a minute on every reading so rows created in
// sequence have strictly increasing timestamps
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recipeFixture struct {
	db     *gorm.DB
	svc    *service.RecipeService
	images *storage.LocalStore
	alice  *model.User
	bob    *model.User
}

func newRecipeFixture(t *testing.T) *recipeFixture {
	t.Helper()
	db := testhelpers.NewSQLiteDB(t)
	images, err := storage.NewLocalStore(t.TempDir(), "/images/recipes")
	require.NoError(t, err)

	clock := newTestClock()
	return &recipeFixture{
		db:     db,
		svc:    service.NewRecipeService(db, images, validation.New(), service.WithClock(clock.Now)),
		images: images,
		alice:  testhelpers.CreateUser(t, db, "alice"),
		bob:    testhelpers.CreateUser(t, db, "bob"),
	}
}

// line is an ingredient name and quantity used to build requests
type line struct {
	name     string
	quantity float64
}

func (f *recipeFixture) request(t *testing.T, title, category string, cookTime int, lines ...line) *types.RecipeRequest {
	t.Helper()
	req := &types.RecipeRequest{
		Title:        title,
		Description:  title + " description",
		Instructions: "Mix everything and cook.",
		PrepTime:     5,
		CookTime:     cookTime,
		Servings:     2,
		CategoryID:   testhelpers.Category(t, f.db, category).ID,
	}
	for _, l := range lines {
		req.Ingredients = append(req.Ingredients, types.RecipeIngredientRequest{
			IngredientID: testhelpers.Ingredient(t, f.db, l.name).ID,
			Quantity:     l.quantity,
		})
	}
	if len(req.Ingredients) == 0 {
		req.Ingredients = []types.RecipeIngredientRequest{
			{IngredientID: testhelpers.Ingredient(t, f.db, "Salt").ID, Quantity: 1},
		}
	}
	return req
}

func (f *recipeFixture) create(t *testing.T, owner *model.User, req *types.RecipeRequest) *types.RecipeResponse {
	t.Helper()
	resp, err := f.svc.CreateRecipe(context.Background(), owner.ID, req)
	require.NoError(t, err)
	return resp
}

func titles(items []types.RecipeResponse) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %T: %v", err, err)
	require.Equal(t, kind, appErr.Kind, appErr.Error())
}

var unknownID = uuid.MustParse("00000000-0000-4000-8000-000000000001")
