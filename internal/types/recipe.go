package types

import (
	"time"

	"github.com/google/uuid"
)

// Sort fields and orders recognised by RecipeQuery
const (
	SortByTitle       = "title"
	SortByCookTime    = "cooktime"
	SortByCreatedDate = "createddate"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Page bounds for RecipeQuery
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// RecipeQuery filters, sorts and paginates the caller's recipes
type RecipeQuery struct {
	SearchTerm     string    `json:"searchTerm" validate:"max=200"`
	CategoryID     uuid.UUID `json:"categoryId"`
	SortBy         string    `json:"sortBy"`
	SortOrder      string    `json:"sortOrder"`
	IngredientName string    `json:"ingredientName" validate:"max=100"`
	PageNumber     int       `json:"pageNumber" validate:"gte=1"`
	PageSize       int       `json:"pageSize" validate:"gte=1,lte=100"`
}

// RecipeResponse is the full view of a recipe
type RecipeResponse struct {
	ID           uuid.UUID                  `json:"id"`
	Title        string                     `json:"title"`
	Description  string                     `json:"description"`
	Instructions string                     `json:"instructions"`
	PrepTime     int                        `json:"prepTime"`
	CookTime     int                        `json:"cookTime"`
	Servings     int                        `json:"servings"`
	ImagePath    *string                    `json:"imagePath"`
	CategoryID   uuid.UUID                  `json:"categoryId"`
	CategoryName string                     `json:"categoryName"`
	UserID       uuid.UUID                  `json:"userId"`
	Ingredients  []RecipeIngredientResponse `json:"ingredients"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

// RecipeIngredientResponse is one ingredient line of a RecipeResponse
type RecipeIngredientResponse struct {
	IngredientID   uuid.UUID `json:"ingredientId"`
	IngredientName string    `json:"ingredientName"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
}

// ImageUploadResponse is returned after a recipe image upload
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// PagedResult is one page of a larger result set
type PagedResult[T any] struct {
	Items           []T   `json:"items"`
	PageNumber      int   `json:"pageNumber"`
	PageSize        int   `json:"pageSize"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// NewPagedResult fills in the derived page metadata
func NewPagedResult[T any](items []T, total int64, pageNumber, pageSize int) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PagedResult[T]{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}

// DashboardStats summarises the caller's recipes
type DashboardStats struct {
	TotalRecipes      int64            `json:"totalRecipes"`
	RecipesByCategory map[string]int64 `json:"recipesByCategory"`
	AverageCookTime   float64          `json:"averageCookTime"`
	AverageTotalTime  float64          `json:"averageTotalTime"`
	RecentRecipes     []RecipeResponse `json:"recentRecipes"`
}

// IngredientResponse is the public view of an ingredient
type IngredientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryResponse is the public view of a category
type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CategoryWithCount adds the caller's recipe count to a category
type CategoryWithCount struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RecipeCount int64     `json:"recipeCount"`
}
