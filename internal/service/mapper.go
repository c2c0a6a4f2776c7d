package service

import (
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/types"
)

func toRecipeResponse(r *model.Recipe) types.RecipeResponse {
	resp := types.RecipeResponse{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		CategoryID:   r.CategoryID,
		CategoryName: r.Category.Name,
		UserID:       r.UserID,
		Ingredients:  make([]types.RecipeIngredientResponse, 0, len(r.Ingredients)),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.ImagePath != "" {
		path := r.ImagePath
		resp.ImagePath = &path
	}
	for _, line := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, types.RecipeIngredientResponse{
			IngredientID:   line.IngredientID,
			IngredientName: line.Ingredient.Name,
			Quantity:       line.Quantity,
			Unit:           line.Ingredient.Unit,
		})
	}
	return resp
}

func toRecipeResponses(recipes []model.Recipe) []types.RecipeResponse {
	out := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, toRecipeResponse(&recipes[i]))
	}
	return out
}

func toIngredientResponse(i *model.Ingredient) types.IngredientResponse {
	return types.IngredientResponse{ID: i.ID, Name: i.Name, Unit: i.Unit, CreatedAt: i.CreatedAt}
}

func toUserProfile(u *model.User) types.UserProfile {
	return types.UserProfile{ID: u.ID, UserName: u.UserName, Email: u.Email, AvatarColor: u.AvatarColor}
}
