package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/database"
	"github.com/gabbyferm/savory/backend/internal/logging"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/types"
	"github.com/gabbyferm/savory/backend/internal/validation"
)

// IngredientService manages the shared ingredient catalogue
type IngredientService struct {
	db       *gorm.DB
	validate *validation.Validator
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB, v *validation.Validator) *IngredientService {
	return &IngredientService{db: db, validate: v}
}

// ListIngredients returns ingredients whose name contains search, ignoring
// case, ordered by name
func (s *IngredientService) ListIngredients(ctx context.Context, search string) ([]types.IngredientResponse, error) {
	query := s.db.WithContext(ctx).Model(&model.Ingredient{})
	if term := strings.TrimSpace(search); term != "" {
		query = query.Where("normalized_name LIKE ? ESCAPE '\\'", likePattern(term))
	}

	var ingredients []model.Ingredient
	if err := query.Order("name ASC").Find(&ingredients).Error; err != nil {
		return nil, apperr.Unexpected("failed to list ingredients", err)
	}
	out := make([]types.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, toIngredientResponse(&ingredients[i]))
	}
	return out, nil
}

// GetIngredient returns a single ingredient
func (s *IngredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*types.IngredientResponse, error) {
	var ingredient model.Ingredient
	err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error
	if isNotFound(err) {
		return nil, apperr.NotFound(msgIngredientNotFound)
	}
	if err != nil {
		return nil, apperr.Unexpected("failed to load ingredient", err)
	}
	resp := toIngredientResponse(&ingredient)
	return &resp, nil
}

// CreateIngredient adds an ingredient. Names are unique ignoring case.
func (s *IngredientService) CreateIngredient(ctx context.Context, req *types.CreateIngredientRequest) (*types.IngredientResponse, error) {
	if req == nil {
		return nil, apperr.Validationf("Request body is required")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var existing int64
	if err := db.Model(&model.Ingredient{}).Where("normalized_name = ?", strings.ToLower(req.Name)).Count(&existing).Error; err != nil {
		return nil, apperr.Unexpected("failed to check ingredient name", err)
	}
	if existing > 0 {
		return nil, duplicateIngredient(req.Name)
	}

	ingredient := model.Ingredient{Name: req.Name, Unit: req.Unit}
	if err := db.Create(&ingredient).Error; err != nil {
		// lost a race with a concurrent insert of the same name
		if database.IsUniqueViolation(err) {
			return nil, duplicateIngredient(req.Name)
		}
		return nil, apperr.Unexpected("failed to create ingredient", err)
	}

	logging.FromContext(ctx).Info("ingredient created", "component", "ingredients", "ingredient_id", ingredient.ID)
	resp := toIngredientResponse(&ingredient)
	return &resp, nil
}

func duplicateIngredient(name string) error {
	return apperr.Conflict(fmt.Sprintf("Ingredient '%s' already exists", name))
}
