package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/types"
)

const (
	titleMatchSQL      = "LOWER(recipes.title) LIKE ? ESCAPE '\\'"
	ingredientMatchSQL = "EXISTS (SELECT 1 FROM recipe_ingredients ri JOIN ingredients i ON i.id = ri.ingredient_id " +
		"WHERE ri.recipe_id = recipes.id AND LOWER(i.name) LIKE ? ESCAPE '\\')"
	defaultRecipeOrder = "recipes.created_at DESC, recipes.id DESC"
)

// ListRecipes returns one page of the caller's recipes matching q.
//
// A search term and an ingredient name that are equal ignoring case come from
// the single search box and match either the title or an ingredient. When
// they differ they are independent filters and both must match.
func (s *RecipeService) ListRecipes(ctx context.Context, callerID uuid.UUID, q types.RecipeQuery) (*types.PagedResult[types.RecipeResponse], error) {
	if callerID == uuid.Nil {
		return nil, apperr.NotAuthenticated("")
	}
	q.SearchTerm = strings.TrimSpace(q.SearchTerm)
	q.IngredientName = strings.TrimSpace(q.IngredientName)
	if err := s.validate.Struct(q); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	// gorm statements are not reusable after execution, so count and find
	// each get a freshly built query
	scoped := func() *gorm.DB {
		return filterRecipes(db.Model(&model.Recipe{}), callerID, q)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, apperr.Unexpected("failed to count recipes", err)
	}

	// compare page indexes before multiplying so huge page numbers cannot
	// wrap the offset
	pageIndex := int64(q.PageNumber - 1)
	pages := (total + int64(q.PageSize) - 1) / int64(q.PageSize)
	var recipes []model.Recipe
	if pageIndex < pages {
		err := preloadRecipe(scoped()).
			Order(recipeOrder(q.SortBy, q.SortOrder)).
			Offset(int(pageIndex * int64(q.PageSize))).
			Limit(q.PageSize).
			Find(&recipes).Error
		if err != nil {
			return nil, apperr.Unexpected("failed to list recipes", err)
		}
	}

	page := types.NewPagedResult(toRecipeResponses(recipes), total, q.PageNumber, q.PageSize)
	return &page, nil
}

func filterRecipes(tx *gorm.DB, callerID uuid.UUID, q types.RecipeQuery) *gorm.DB {
	tx = tx.Where("recipes.user_id = ?", callerID)
	if q.CategoryID != uuid.Nil {
		tx = tx.Where("recipes.category_id = ?", q.CategoryID)
	}

	search, ingredient := q.SearchTerm, q.IngredientName
	if search != "" && ingredient != "" && strings.EqualFold(search, ingredient) {
		pattern := likePattern(search)
		return tx.Where("("+titleMatchSQL+" OR "+ingredientMatchSQL+")", pattern, pattern)
	}
	if search != "" {
		tx = tx.Where(titleMatchSQL, likePattern(search))
	}
	if ingredient != "" {
		tx = tx.Where(ingredientMatchSQL, likePattern(ingredient))
	}
	return tx
}

// recipeOrder maps sortBy/sortOrder onto an ORDER BY clause. The id column
// breaks ties so paging is deterministic.
func recipeOrder(sortBy, sortOrder string) string {
	dir := strings.ToUpper(types.SortAsc)
	if strings.EqualFold(strings.TrimSpace(sortOrder), types.SortDesc) {
		dir = strings.ToUpper(types.SortDesc)
	}

	var column string
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case types.SortByTitle:
		column = "recipes.title"
	case types.SortByCookTime:
		column = "recipes.cook_time"
	case types.SortByCreatedDate:
		column = "recipes.created_at"
	default:
		return defaultRecipeOrder
	}
	return column + " " + dir + ", recipes.id " + dir
}

// likePattern builds a case-insensitive substring pattern with LIKE
// metacharacters escaped
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func preloadRecipe(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Category").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_ingredients.position ASC")
		}).
		Preload("Ingredients.Ingredient")
}
