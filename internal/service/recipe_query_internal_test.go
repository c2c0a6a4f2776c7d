package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gabbyferm/savory/backend/internal/model"
)

func TestLikePattern(t *testing.T) {
	tests := map[string]string{
		"Chicken":    "%chicken%",
		"50% off":    `%50\% off%`,
		"snake_bit":  `%snake\_bit%`,
		`back\slash`: `%back\\slash%`,
	}
	for in, want := range tests {
		assert.Equal(t, want, likePattern(in), in)
	}
}

func TestRecipeOrder(t *testing.T) {
	tests := []struct {
		sortBy, sortOrder string
		want              string
	}{
		{"title", "", "recipes.title ASC, recipes.id ASC"},
		{"TITLE", "desc", "recipes.title DESC, recipes.id DESC"},
		{"cooktime", "Desc", "recipes.cook_time DESC, recipes.id DESC"},
		{"createddate", "asc", "recipes.created_at ASC, recipes.id ASC"},
		{"createddate", "descending", "recipes.created_at ASC, recipes.id ASC"},
		{"", "asc", defaultRecipeOrder},
		{"rating", "asc", defaultRecipeOrder},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, recipeOrder(tt.sortBy, tt.sortOrder), "%s %s", tt.sortBy, tt.sortOrder)
	}
}

func TestIsOwner(t *testing.T) {
	owner := uuid.New()
	recipe := &model.Recipe{UserID: owner}

	assert.True(t, isOwner(recipe, owner))
	assert.False(t, isOwner(recipe, uuid.New()))
	assert.False(t, isOwner(recipe, uuid.Nil))
	assert.False(t, isOwner(nil, owner))
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 18.3, roundTenth(55.0/3))
	assert.Equal(t, 0.0, roundTenth(0))
	assert.Equal(t, 12.5, roundTenth(12.46))
	assert.Equal(t, 12.2, roundTenth(12.25))
}
