package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/gabbyferm/savory/backend/internal/types"
)

// MockIngredientService is a mock implementation of the IngredientService interface
type MockIngredientService struct {
	mock.Mock
}

func (m *MockIngredientService) ListIngredients(ctx context.Context, search string) ([]types.IngredientResponse, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.IngredientResponse), args.Error(1)
}

func (m *MockIngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*types.IngredientResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.IngredientResponse), args.Error(1)
}

func (m *MockIngredientService) CreateIngredient(ctx context.Context, req *types.CreateIngredientRequest) (*types.IngredientResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.IngredientResponse), args.Error(1)
}

// MockCategoryService is a mock implementation of the CategoryService interface
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]types.CategoryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) ListCategoriesWithCounts(ctx context.Context, callerID uuid.UUID) ([]types.CategoryWithCount, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.CategoryWithCount), args.Error(1)
}

// MockDashboardService is a mock implementation of the DashboardService interface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetStats(ctx context.Context, callerID uuid.UUID) (*types.DashboardStats, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DashboardStats), args.Error(1)
}
