package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/service"
)

// imageField is the multipart field carrying the uploaded file
const imageField = "file"

// UploadImage stores the multipart file as the recipe's picture
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, msgRecipeNotFound)
	if !ok {
		return
	}

	header, err := c.FormFile(imageField)
	if err != nil {
		respondError(c, apperr.Validationf("No file uploaded"))
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, apperr.Unexpected("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	resp, err := h.recipeService.UploadImage(c.Request.Context(), userID, id, service.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
