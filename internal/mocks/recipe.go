package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/gabbyferm/savory/backend/internal/service"
	"github.com/gabbyferm/savory/backend/internal/types"
)

// MockRecipeService is a mock implementation of the RecipeService interface
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, callerID uuid.UUID, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, callerID, id uuid.UUID) (*types.RecipeResponse, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, callerID, id uuid.UUID, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	args := m.Called(ctx, callerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResponse), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, callerID, id uuid.UUID) error {
	args := m.Called(ctx, callerID, id)
	return args.Error(0)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, callerID uuid.UUID, q types.RecipeQuery) (*types.PagedResult[types.RecipeResponse], error) {
	args := m.Called(ctx, callerID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PagedResult[types.RecipeResponse]), args.Error(1)
}

func (m *MockRecipeService) UploadImage(ctx context.Context, callerID, id uuid.UUID, img service.ImageUpload) (*types.ImageUploadResponse, error) {
	args := m.Called(ctx, callerID, id, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ImageUploadResponse), args.Error(1)
}
