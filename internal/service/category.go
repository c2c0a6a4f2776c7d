package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/types"
)

// CategoryService reads the seeded recipe categories
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// ListCategories returns every category ordered by name
func (s *CategoryService) ListCategories(ctx context.Context) ([]types.CategoryResponse, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperr.Unexpected("failed to list categories", err)
	}
	out := make([]types.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, types.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// ListCategoriesWithCounts returns every category with the number of the
// caller's recipes in it, including empty categories
func (s *CategoryService) ListCategoriesWithCounts(ctx context.Context, callerID uuid.UUID) ([]types.CategoryWithCount, error) {
	if callerID == uuid.Nil {
		return nil, apperr.NotAuthenticated("")
	}
	out := []types.CategoryWithCount{}
	err := s.db.WithContext(ctx).
		Table("categories").
		Select("categories.id, categories.name, COUNT(recipes.id) AS recipe_count").
		Joins("LEFT JOIN recipes ON recipes.category_id = categories.id AND recipes.user_id = ?", callerID).
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Unexpected("failed to count recipes per category", err)
	}
	return out, nil
}
