package types

import "github.com/google/uuid"

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	UserName    string `json:"userName" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,password"`
	AvatarColor string `json:"avatarColor" validate:"omitempty,hexcolor,len=7"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest exchanges a possibly expired access token and its
// refresh token for a new pair
type RefreshTokenRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateProfileRequest changes only the fields that are present
type UpdateProfileRequest struct {
	UserName    *string `json:"userName" validate:"omitempty,min=3,max=50"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	AvatarColor *string `json:"avatarColor" validate:"omitempty,hexcolor,len=7"`
}

// ChangePasswordRequest represents the request body for a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// CreateIngredientRequest represents the request body for adding an ingredient
type CreateIngredientRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Unit string `json:"unit" validate:"required,unit"`
}

// RecipeRequest is the body of both create and update recipe calls
type RecipeRequest struct {
	Title        string                    `json:"title" validate:"required,max=200"`
	Description  string                    `json:"description" validate:"max=1000"`
	Instructions string                    `json:"instructions" validate:"required,max=5000"`
	PrepTime     int                       `json:"prepTime" validate:"gte=0"`
	CookTime     int                       `json:"cookTime" validate:"gte=0"`
	Servings     int                       `json:"servings" validate:"gt=0"`
	CategoryID   uuid.UUID                 `json:"categoryId" validate:"required"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
}

// RecipeIngredientRequest is a single ingredient line of a RecipeRequest
type RecipeIngredientRequest struct {
	IngredientID uuid.UUID `json:"ingredientId" validate:"required"`
	Quantity     float64   `json:"quantity" validate:"gte=0"`
}
