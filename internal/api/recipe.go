package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/service"
	"github.com/gabbyferm/savory/backend/internal/types"
)

const msgRecipeNotFound = "Recipe not found"

// RecipeHandler serves the caller's recipes
type RecipeHandler struct {
	recipeService service.IRecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// RegisterRoutes mounts the recipe endpoints on an authenticated group.
// writeLimit runs before every mutating endpoint.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, writeLimit ...gin.HandlerFunc) {
	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeLimit...), handler)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", write(h.CreateRecipe)...)
		recipes.PUT("/:id", write(h.UpdateRecipe)...)
		recipes.DELETE("/:id", write(h.DeleteRecipe)...)
		recipes.POST("/:id/image", write(h.UploadImage)...)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	q, err := parseRecipeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.recipeService.ListRecipes(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgRecipeNotFound)
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgRecipeNotFound)
	if !ok {
		return
	}
	var req types.RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgRecipeNotFound)
	if !ok {
		return
	}
	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseRecipeQuery reads the list query string. Paging defaults apply to
// absent values; malformed numbers and ids are validation errors.
func parseRecipeQuery(c *gin.Context) (types.RecipeQuery, error) {
	q := types.RecipeQuery{
		SearchTerm:     strings.TrimSpace(c.Query("searchTerm")),
		SortBy:         strings.TrimSpace(c.Query("sortBy")),
		SortOrder:      strings.TrimSpace(c.Query("sortOrder")),
		IngredientName: strings.TrimSpace(c.Query("ingredientName")),
		PageNumber:     types.DefaultPageNumber,
		PageSize:       types.DefaultPageSize,
	}

	var msgs []string
	if v := strings.TrimSpace(c.Query("categoryId")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			msgs = append(msgs, "categoryId must be a valid id")
		}
		q.CategoryID = id
	}
	if v := strings.TrimSpace(c.Query("pageNumber")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			msgs = append(msgs, "pageNumber must be an integer")
		}
		q.PageNumber = n
	}
	if v := strings.TrimSpace(c.Query("pageSize")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			msgs = append(msgs, "pageSize must be an integer")
		}
		q.PageSize = n
	}
	if len(msgs) > 0 {
		return q, apperr.Validation(msgs...)
	}
	return q, nil
}
