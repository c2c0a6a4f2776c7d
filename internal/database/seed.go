package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/model"
)

// DefaultCategories is the fixed set of recipe categories
var DefaultCategories = []string{"Breakfast", "Lunch", "Dinner", "Dessert", "Snack", "Beverage"}

// DefaultIngredients are the base ingredients every installation starts with
var DefaultIngredients = []model.Ingredient{
	{Name: "Pasta", Unit: "g"},
	{Name: "Rice", Unit: "g"},
	{Name: "Butter", Unit: "g"},
	{Name: "Olive Oil", Unit: "ml"},
	{Name: "Parmesan", Unit: "g"},
	{Name: "Garlic", Unit: "pcs"},
	{Name: "Onion", Unit: "pcs"},
	{Name: "Tomato", Unit: "pcs"},
	{Name: "Chicken Breast", Unit: "g"},
	{Name: "Eggs", Unit: "pcs"},
	{Name: "Flour", Unit: "g"},
	{Name: "Sugar", Unit: "g"},
	{Name: "Salt", Unit: "g"},
	{Name: "Black Pepper", Unit: "g"},
	{Name: "Milk", Unit: "ml"},
}

// SeedResult counts the rows a seed run inserted
type SeedResult struct {
	Categories  int
	Ingredients int
}

// SeedReferenceData inserts the default categories and ingredients that are
// missing. Running it again inserts nothing.
func SeedReferenceData(ctx context.Context, db *gorm.DB) (SeedResult, error) {
	var res SeedResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range DefaultCategories {
			result := tx.Where(model.Category{Name: name}).FirstOrCreate(&model.Category{Name: name})
			if result.Error != nil {
				return fmt.Errorf("failed to seed category %s: %w", name, result.Error)
			}
			res.Categories += int(result.RowsAffected)
		}

		for _, ing := range DefaultIngredients {
			row := model.Ingredient{Name: ing.Name, Unit: ing.Unit}
			result := tx.Where("normalized_name = ?", strings.ToLower(ing.Name)).FirstOrCreate(&row)
			if result.Error != nil {
				return fmt.Errorf("failed to seed ingredient %s: %w", ing.Name, result.Error)
			}
			res.Ingredients += int(result.RowsAffected)
		}
		return nil
	})
	return res, err
}
