package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/apperr"
)

// Client-facing messages
const (
	msgRecipeNotFound     = "Recipe not found"
	msgIngredientNotFound = "Ingredient not found"
	msgUserNotFound       = "User not found"
	msgInvalidCredentials = "Invalid email or password"
	msgInvalidRefresh     = "Invalid refresh token"
	msgEmailTaken         = "Email is already registered"
)

// unexpected passes application errors through and wraps anything else
func unexpected(message string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Unexpected(message, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
