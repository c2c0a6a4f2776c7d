package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/gabbyferm/savory/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error)
	Refresh(ctx context.Context, req *types.RefreshTokenRequest) (*types.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserProfile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *types.ChangePasswordRequest) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, callerID uuid.UUID, req *types.RecipeRequest) (*types.RecipeResponse, error)
	GetRecipe(ctx context.Context, callerID, id uuid.UUID) (*types.RecipeResponse, error)
	UpdateRecipe(ctx context.Context, callerID, id uuid.UUID, req *types.RecipeRequest) (*types.RecipeResponse, error)
	DeleteRecipe(ctx context.Context, callerID, id uuid.UUID) error
	ListRecipes(ctx context.Context, callerID uuid.UUID, q types.RecipeQuery) (*types.PagedResult[types.RecipeResponse], error)
	UploadImage(ctx context.Context, callerID, id uuid.UUID, img ImageUpload) (*types.ImageUploadResponse, error)
}

// IIngredientService defines the interface for ingredient operations
type IIngredientService interface {
	ListIngredients(ctx context.Context, search string) ([]types.IngredientResponse, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*types.IngredientResponse, error)
	CreateIngredient(ctx context.Context, req *types.CreateIngredientRequest) (*types.IngredientResponse, error)
}

// ICategoryService defines the interface for category operations
type ICategoryService interface {
	ListCategories(ctx context.Context) ([]types.CategoryResponse, error)
	ListCategoriesWithCounts(ctx context.Context, callerID uuid.UUID) ([]types.CategoryWithCount, error)
}

// IDashboardService defines the interface for the dashboard summary
type IDashboardService interface {
	GetStats(ctx context.Context, callerID uuid.UUID) (*types.DashboardStats, error)
}
