package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe belongs to exactly one user and one category
type Recipe struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"userId"`
	User         *User              `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title        string             `gorm:"size:200;not null" json:"title"`
	Description  string             `gorm:"size:1000" json:"description"`
	Instructions string             `gorm:"type:text;not null" json:"instructions"`
	PrepTime     int                `gorm:"not null" json:"prepTime"`
	CookTime     int                `gorm:"not null" json:"cookTime"`
	Servings     int                `gorm:"not null" json:"servings"`
	ImagePath    string             `gorm:"size:500" json:"imagePath,omitempty"`
	CategoryID   uuid.UUID          `gorm:"type:uuid;not null;index" json:"categoryId"`
	Category     Category           `gorm:"constraint:OnDelete:RESTRICT" json:"category"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedAt    time.Time          `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// OwnerID returns the id of the user that created the recipe
func (r *Recipe) OwnerID() uuid.UUID {
	return r.UserID
}

// RecipeIngredient is one ingredient line of a recipe
type RecipeIngredient struct {
	RecipeID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"recipeId"`
	IngredientID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"ingredientId"`
	Ingredient   Ingredient `gorm:"constraint:OnDelete:RESTRICT" json:"ingredient"`
	Quantity     float64    `gorm:"not null" json:"quantity"`
	Position     int        `gorm:"not null" json:"position"`
}
