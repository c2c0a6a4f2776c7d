package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/mocks"
	"github.com/gabbyferm/savory/backend/internal/types"
)

func TestListIngredientsHandler(t *testing.T) {
	s := newTestServer(t)
	svc := new(mocks.MockIngredientService)
	NewIngredientHandler(svc).RegisterRoutes(s.protected)
	svc.On("ListIngredients", mock.Anything, "pa").Return([]types.IngredientResponse{
		{ID: uuid.New(), Name: "Parmesan", Unit: "g"},
		{ID: uuid.New(), Name: "Pasta", Unit: "g"},
	}, nil)

	w := s.do(t, http.MethodGet, "/api/v1/ingredients?searchTerm=pa", nil, validToken)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[[]types.IngredientResponse](t, w)
	require.Len(t, got, 2)
	assert.Equal(t, "Parmesan", got[0].Name)
}

func TestGetIngredientHandler(t *testing.T) {
	s := newTestServer(t)
	svc := new(mocks.MockIngredientService)
	NewIngredientHandler(svc).RegisterRoutes(s.protected)
	id := uuid.New()
	svc.On("GetIngredient", mock.Anything, id).Return(nil, apperr.NotFound("Ingredient not found"))

	w := s.do(t, http.MethodGet, "/api/v1/ingredients/"+id.String(), nil, validToken)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ingredient not found", errorBody(t, w).Message)
}

func TestCreateIngredientHandler(t *testing.T) {
	s := newTestServer(t)
	svc := new(mocks.MockIngredientService)
	NewIngredientHandler(svc).RegisterRoutes(s.protected)
	basil := &types.CreateIngredientRequest{Name: "Basil", Unit: "g"}
	pasta := &types.CreateIngredientRequest{Name: "pasta", Unit: "g"}
	svc.On("CreateIngredient", mock.Anything, basil).Return(&types.IngredientResponse{ID: uuid.New(), Name: "Basil", Unit: "g"}, nil)
	svc.On("CreateIngredient", mock.Anything, pasta).Return(nil, apperr.Conflict("Ingredient 'pasta' already exists"))

	w := s.do(t, http.MethodPost, "/api/v1/ingredients", basil, validToken)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/ingredients", pasta, validToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Ingredient 'pasta' already exists", errorBody(t, w).Message)
}

func TestCategoryHandlers(t *testing.T) {
	s := newTestServer(t)
	svc := new(mocks.MockCategoryService)
	NewCategoryHandler(svc).RegisterRoutes(s.protected)
	dinner := uuid.New()
	svc.On("ListCategories", mock.Anything).Return([]types.CategoryResponse{{ID: dinner, Name: "Dinner"}}, nil)
	svc.On("ListCategoriesWithCounts", mock.Anything, testUserID).
		Return([]types.CategoryWithCount{{ID: dinner, Name: "Dinner", RecipeCount: 3}}, nil)

	w := s.do(t, http.MethodGet, "/api/v1/categories", nil, validToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Dinner", decode[[]types.CategoryResponse](t, w)[0].Name)

	w = s.do(t, http.MethodGet, "/api/v1/categories/with-counts", nil, validToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), decode[[]types.CategoryWithCount](t, w)[0].RecipeCount)
}

func TestDashboardHandler(t *testing.T) {
	s := newTestServer(t)
	svc := new(mocks.MockDashboardService)
	NewDashboardHandler(svc).RegisterRoutes(s.protected)
	svc.On("GetStats", mock.Anything, testUserID).Return(&types.DashboardStats{
		TotalRecipes:      4,
		RecipesByCategory: map[string]int64{"Dinner": 3, "Dessert": 1},
		AverageCookTime:   22.5,
		AverageTotalTime:  30.1,
		RecentRecipes:     []types.RecipeResponse{},
	}, nil)

	w := s.do(t, http.MethodGet, "/api/v1/dashboard/stats", nil, validToken)

	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[types.DashboardStats](t, w)
	assert.Equal(t, int64(4), stats.TotalRecipes)
	assert.Equal(t, int64(3), stats.RecipesByCategory["Dinner"])
	assert.Equal(t, 30.1, stats.AverageTotalTime)
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name       string
		check      func(context.Context) error
		wantStatus int
		wantState  string
	}{
		{"healthy", func(context.Context) error { return nil }, http.StatusOK, "healthy"},
		{"database down", func(context.Context) error { return errors.New("dial tcp: refused") }, http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.engine.GET("/health", NewHealthHandler(tt.check).HealthCheck)

			w := s.do(t, http.MethodGet, "/health", nil, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantState, decode[map[string]string](t, w)["status"])
		})
	}
}
