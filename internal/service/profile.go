package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/database"
	"github.com/gabbyferm/savory/backend/internal/logging"
	"github.com/gabbyferm/savory/backend/internal/model"
	"github.com/gabbyferm/savory/backend/internal/types"
	"github.com/gabbyferm/savory/backend/internal/validation"
)

const msgEmailInUse = "Email is already in use"

// ProfileService handles the signed-in user's own account
type ProfileService struct {
	db       *gorm.DB
	validate *validation.Validator
	opts     options
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, v *validation.Validator, opts ...Option) *ProfileService {
	return &ProfileService{db: db, validate: v, opts: buildOptions(opts)}
}

// GetProfile returns the user's public profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	user, err := s.loadUser(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	profile := toUserProfile(user)
	return &profile, nil
}

// UpdateProfile changes the fields present in req
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*types.UserProfile, error) {
	if req == nil {
		return nil, apperr.Validationf("Request body is required")
	}
	if req.UserName != nil {
		name := strings.TrimSpace(*req.UserName)
		req.UserName = &name
	}
	if req.Email != nil {
		email := model.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		var taken int64
		if err := db.Model(&model.User{}).Where("email = ? AND id <> ?", *req.Email, userID).Count(&taken).Error; err != nil {
			return nil, apperr.Unexpected("failed to check email", err)
		}
		if taken > 0 {
			return nil, apperr.Conflict(msgEmailInUse)
		}
		user.Email = *req.Email
	}
	if req.UserName != nil {
		user.UserName = *req.UserName
	}
	if req.AvatarColor != nil {
		user.AvatarColor = strings.ToUpper(*req.AvatarColor)
	}
	user.UpdatedAt = s.opts.now()

	if err := db.Save(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict(msgEmailInUse)
		}
		return nil, apperr.Unexpected("failed to update profile", err)
	}

	profile := toUserProfile(user)
	return &profile, nil
}

// ChangePassword replaces the password after checking the current one. Any
// outstanding refresh token is revoked.
func (s *ProfileService) ChangePassword(ctx context.Context, userID uuid.UUID, req *types.ChangePasswordRequest) error {
	if req == nil {
		return apperr.Validationf("Request body is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	user, err := s.loadUser(db, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return apperr.Validationf("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.opts.bcryptCost)
	if err != nil {
		return apperr.Unexpected("failed to hash password", err)
	}
	err = db.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":            string(hash),
		"refresh_token_hash":       "",
		"refresh_token_expires_at": nil,
		"updated_at":               s.opts.now(),
	}).Error
	if err != nil {
		return apperr.Unexpected("failed to change password", err)
	}

	logging.FromContext(ctx).Info("password changed", "component", "profile", "user_id", userID)
	return nil
}

func (s *ProfileService) loadUser(db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	if userID == uuid.Nil {
		return nil, apperr.NotAuthenticated("")
	}
	var user model.User
	err := db.First(&user, "id = ?", userID).Error
	if isNotFound(err) {
		return nil, apperr.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperr.Unexpected("failed to load user", err)
	}
	return &user, nil
}
