package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/logging"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/storage"
	"github.com/gabbyferm/savory/backend/internal/types"
	"github.com/gabbyferm/savory/backend/internal/validation"
)

// RecipeService handles recipe queries and commands for the calling user
type RecipeService struct {
	db       *gorm.DB
	images   storage.ImageStore
	validate *validation.Validator
	opts     options
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images storage.ImageStore, v *validation.Validator, opts ...Option) *RecipeService {
	return &RecipeService{
		db:       db,
		images:   images,
		validate: v,
		opts:     buildOptions(opts),
	}
}

// GetRecipe returns the caller's recipe with its category and ingredients.
// A recipe owned by someone else is reported as not found.
func (s *RecipeService) GetRecipe(ctx context.Context, callerID, id uuid.UUID) (*types.RecipeResponse, error) {
	if callerID == uuid.Nil {
		return nil, apperr.NotAuthenticated("")
	}
	var recipe model.Recipe
	err := preloadRecipe(s.db.WithContext(ctx)).First(&recipe, "recipes.id = ?", id).Error
	if isNotFound(err) {
		return nil, apperr.NotFound(msgRecipeNotFound)
	}
	if err != nil {
		return nil, apperr.Unexpected("failed to load recipe", err)
	}
	if !isOwner(&recipe, callerID) {
		return nil, apperr.NotFound(msgRecipeNotFound)
	}
	resp := toRecipeResponse(&recipe)
	return &resp, nil
}

// CreateRecipe stores a new recipe owned by the caller
func (s *RecipeService) CreateRecipe(ctx context.Context, callerID uuid.UUID, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	if callerID == uuid.Nil {
		return nil, apperr.NotAuthenticated("")
	}
	if err := s.validateRecipe(req); err != nil {
		return nil, err
	}

	now := s.opts.now()
	recipe := model.Recipe{
		ID:        uuid.New(),
		UserID:    callerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyRecipeFields(&recipe, req)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, req); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}
		return insertLines(tx, recipe.ID, req.Ingredients)
	})
	if err != nil {
		return nil, unexpected("failed to create recipe", err)
	}

	recipeMutations.WithLabelValues("create").Inc()
	logging.FromContext(ctx).Info("recipe created", "component", "recipes", "recipe_id", recipe.ID, "user_id", callerID)
	return s.GetRecipe(ctx, callerID, recipe.ID)
}

// UpdateRecipe overwrites the caller's recipe and replaces its ingredient
// lines wholesale
func (s *RecipeService) UpdateRecipe(ctx context.Context, callerID, id uuid.UUID, req *types.RecipeRequest) (*types.RecipeResponse, error) {
	if callerID == uuid.Nil {
		return nil, apperr.NotAuthenticated("")
	}
	if err := s.validateRecipe(req); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := loadOwnedRecipe(tx, callerID, id)
		if err != nil {
			return err
		}
		if err := checkReferences(tx, req); err != nil {
			return err
		}

		applyRecipeFields(recipe, req)
		recipe.UpdatedAt = s.opts.now()
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return fmt.Errorf("failed to save recipe: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to remove ingredient lines: %w", err)
		}
		return insertLines(tx, id, req.Ingredients)
	})
	if err != nil {
		return nil, unexpected("failed to update recipe", err)
	}

	recipeMutations.WithLabelValues("update").Inc()
	return s.GetRecipe(ctx, callerID, id)
}

// DeleteRecipe removes the caller's recipe, its ingredient lines and its image
func (s *RecipeService) DeleteRecipe(ctx context.Context, callerID, id uuid.UUID) error {
	if callerID == uuid.Nil {
		return apperr.NotAuthenticated("")
	}

	var imagePath string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := loadOwnedRecipe(tx, callerID, id)
		if err != nil {
			return err
		}
		imagePath = recipe.ImagePath
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to remove ingredient lines: %w", err)
		}
		if err := tx.Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return unexpected("failed to delete recipe", err)
	}

	recipeMutations.WithLabelValues("delete").Inc()
	s.removeImage(ctx, imagePath)
	return nil
}

// removeImage deletes a stored image, logging failures instead of
// returning them
func (s *RecipeService) removeImage(ctx context.Context, publicPath string) {
	if publicPath == "" || s.images == nil {
		return
	}
	if err := s.images.Delete(ctx, publicPath); err != nil {
		logging.FromContext(ctx).Warn("failed to delete recipe image",
			"component", "recipes", "image_path", publicPath, "error", err)
	}
}

func (s *RecipeService) validateRecipe(req *types.RecipeRequest) error {
	if req == nil {
		return apperr.Validationf("Request body is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return err
	}
	seen := make(map[uuid.UUID]struct{}, len(req.Ingredients))
	for i, line := range req.Ingredients {
		if _, dup := seen[line.IngredientID]; dup {
			return apperr.Validation(fmt.Sprintf("ingredients[%d].ingredientId is listed more than once", i))
		}
		seen[line.IngredientID] = struct{}{}
	}
	return nil
}

func applyRecipeFields(r *model.Recipe, req *types.RecipeRequest) {
	r.Title = req.Title
	r.Description = req.Description
	r.Instructions = req.Instructions
	r.PrepTime = req.PrepTime
	r.CookTime = req.CookTime
	r.Servings = req.Servings
	r.CategoryID = req.CategoryID
}

// loadOwnedRecipe fetches a recipe inside tx and applies the ownership rule
func loadOwnedRecipe(tx *gorm.DB, callerID, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := tx.First(&recipe, "id = ?", id).Error
	if isNotFound(err) {
		return nil, apperr.NotFound(msgRecipeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if !isOwner(&recipe, callerID) {
		return nil, apperr.NotFound(msgRecipeNotFound)
	}
	return &recipe, nil
}

// checkReferences makes sure the category and every ingredient exist
func checkReferences(tx *gorm.DB, req *types.RecipeRequest) error {
	var categories int64
	if err := tx.Model(&model.Category{}).Where("id = ?", req.CategoryID).Count(&categories).Error; err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	if categories == 0 {
		return apperr.Validation("categoryId does not reference an existing category")
	}

	ids := make([]uuid.UUID, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		ids = append(ids, line.IngredientID)
	}
	var found []uuid.UUID
	if err := tx.Model(&model.Ingredient{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("failed to check ingredients: %w", err)
	}
	existing := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	var msgs []string
	for i, id := range ids {
		if _, ok := existing[id]; !ok {
			msgs = append(msgs, fmt.Sprintf("ingredients[%d].ingredientId does not reference an existing ingredient", i))
		}
	}
	if len(msgs) > 0 {
		return apperr.Validation(msgs...)
	}
	return nil
}

func insertLines(tx *gorm.DB, recipeID uuid.UUID, lines []types.RecipeIngredientRequest) error {
	rows := make([]model.RecipeIngredient, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, model.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
			Position:     i,
		})
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert ingredient lines: %w", err)
	}
	return nil
}
