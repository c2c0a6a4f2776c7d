package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabbyferm/savory/backend/internal/service"
)

// CategoryHandler serves the recipe categories
type CategoryHandler struct {
	categoryService service.ICategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.ICategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes mounts the category endpoints on an authenticated group
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/with-counts", h.ListCategoriesWithCounts)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) ListCategoriesWithCounts(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	categories, err := h.categoryService.ListCategoriesWithCounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
