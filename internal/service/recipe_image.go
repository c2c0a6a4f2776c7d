package service

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/logging"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/types"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageUpload is an image file received for a recipe
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadImage stores img as the picture of the caller's recipe and removes
// the picture it replaces
func (s *RecipeService) UploadImage(ctx context.Context, callerID, id uuid.UUID, img ImageUpload) (*types.ImageUploadResponse, error) {
	if callerID == uuid.Nil {
		return nil, apperr.NotAuthenticated("")
	}
	ext := strings.ToLower(filepath.Ext(img.FileName))
	if !imageExtensions[ext] || img.Size <= 0 || img.Size > s.opts.maxImageSize || img.Content == nil {
		return nil, apperr.Validationf("Invalid image file. Allowed formats: jpg, jpeg, png, webp. Max size: %dMB",
			s.opts.maxImageSize/(1024*1024))
	}
	if s.images == nil {
		return nil, apperr.Unexpected("image storage is not configured", nil)
	}

	db := s.db.WithContext(ctx)
	recipe, err := loadOwnedRecipe(db, callerID, id)
	if err != nil {
		return nil, unexpected("failed to load recipe", err)
	}

	publicPath, err := s.images.Save(ctx, uuid.NewString()+ext, io.LimitReader(img.Content, img.Size), img.Size, img.ContentType)
	if err != nil {
		return nil, apperr.Unexpected("failed to store image", err)
	}

	res := db.Model(&model.Recipe{}).
		Where("id = ? AND user_id = ?", id, callerID).
		Updates(map[string]any{"image_path": publicPath, "updated_at": s.opts.now()})
	if res.Error != nil || res.RowsAffected == 0 {
		s.removeImage(ctx, publicPath)
		if res.Error != nil {
			return nil, apperr.Unexpected("failed to save image path", res.Error)
		}
		// deleted between the ownership check and the update
		return nil, apperr.NotFound(msgRecipeNotFound)
	}

	imageUploadBytes.Observe(float64(img.Size))
	logging.FromContext(ctx).Info("recipe image replaced",
		"component", "recipes", "recipe_id", id, "image_path", publicPath)
	if recipe.ImagePath != "" && recipe.ImagePath != publicPath {
		s.removeImage(ctx, recipe.ImagePath)
	}
	return &types.ImageUploadResponse{ImageURL: publicPath}, nil
}
