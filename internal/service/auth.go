package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
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

const refreshTokenBytes = 64

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// AuthConfig holds the token settings of AuthService
type AuthConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthService registers users and issues access and refresh tokens
type AuthService struct {
	db       *gorm.DB
	cfg      AuthConfig
	validate *validation.Validator
	colors   *ColorPicker
	opts     options
}

// NewAuthService creates a new AuthService instance
func NewAuthService(db *gorm.DB, cfg AuthConfig, v *validation.Validator, opts ...Option) *AuthService {
	o := buildOptions(opts)
	return &AuthService{
		db:       db,
		cfg:      cfg,
		validate: v,
		colors:   NewColorPicker(o.randSource),
		opts:     o,
	}
}

// Register creates an account and signs it in
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (resp *types.AuthResponse, err error) {
	defer func() { authEvents.WithLabelValues("register", authOutcome(err)).Inc() }()

	if req == nil {
		return nil, apperr.Validationf("Request body is required")
	}
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = model.NormalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var existing int64
	if err := db.Model(&model.User{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return nil, apperr.Unexpected("failed to check email", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict(msgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.bcryptCost)
	if err != nil {
		return nil, apperr.Unexpected("failed to hash password", err)
	}

	color := strings.ToUpper(req.AvatarColor)
	if color == "" {
		color = s.colors.Pick()
	}
	user := model.User{
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: string(hash),
		AvatarColor:  color,
	}
	if err := db.Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict(msgEmailTaken)
		}
		return nil, apperr.Unexpected("failed to create user", err)
	}

	logging.FromContext(ctx).Info("user registered", "component", "auth", "user_id", user.ID)
	return s.issueTokens(ctx, &user)
}

// Login checks the credentials and issues a new token pair
func (s *AuthService) Login(ctx context.Context, req *types.LoginRequest) (resp *types.AuthResponse, err error) {
	defer func() { authEvents.WithLabelValues("login", authOutcome(err)).Inc() }()

	if req == nil {
		return nil, apperr.Validationf("Request body is required")
	}
	req.Email = model.NormalizeEmail(req.Email)
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var user model.User
	err = s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if isNotFound(err) {
		return nil, apperr.NotAuthenticated(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperr.Unexpected("failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logging.FromContext(ctx).Info("login rejected", "component", "auth", "user_id", user.ID)
		return nil, apperr.NotAuthenticated(msgInvalidCredentials)
	}

	return s.issueTokens(ctx, &user)
}

// Refresh exchanges an access token, which may have expired, and the refresh
// token issued with it for a new pair. The refresh token is single use.
func (s *AuthService) Refresh(ctx context.Context, req *types.RefreshTokenRequest) (resp *types.AuthResponse, err error) {
	defer func() { authEvents.WithLabelValues("refresh", authOutcome(err)).Inc() }()

	if req == nil {
		return nil, apperr.Validationf("Request body is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	claims, err := s.parseExpired(req.AccessToken)
	if err != nil {
		return nil, apperr.NotAuthenticated(msgInvalidRefresh)
	}

	db := s.db.WithContext(ctx)
	var user model.User
	err = db.First(&user, "id = ?", claims.UserID).Error
	if isNotFound(err) {
		return nil, apperr.NotAuthenticated(msgInvalidRefresh)
	}
	if err != nil {
		return nil, apperr.Unexpected("failed to load user", err)
	}

	presented := hashToken(req.RefreshToken)
	if user.RefreshTokenHash == "" ||
		subtle.ConstantTimeCompare([]byte(presented), []byte(user.RefreshTokenHash)) != 1 ||
		user.RefreshTokenExpiresAt == nil ||
		!user.RefreshTokenExpiresAt.After(s.opts.now()) {
		return nil, apperr.NotAuthenticated(msgInvalidRefresh)
	}

	return s.rotateTokens(ctx, &user, presented)
}

// Logout revokes the user's refresh token. Access tokens stay valid until
// they expire.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperr.NotAuthenticated("")
	}
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]any{"refresh_token_hash": "", "refresh_token_expires_at": nil}).Error
	if err != nil {
		return apperr.Unexpected("failed to revoke refresh token", err)
	}
	authEvents.WithLabelValues("logout", authOutcome(nil)).Inc()
	return nil
}

// GenerateToken signs an access token for user
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := s.opts.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
		UserID:   user.ID,
		Username: user.UserName,
		Email:    user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateToken verifies signature, issuer, audience and expiry of an access
// token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithAudience(s.cfg.Audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.opts.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// parseExpired verifies the signature and issuer of an access token but
// accepts it past its expiry
func (s *AuthService) parseExpired(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, err
	}
	if claims.Issuer != s.cfg.Issuer || claims.UserID == uuid.Nil {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

func (s *AuthService) keyFunc(*jwt.Token) (any, error) {
	return []byte(s.cfg.Secret), nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*types.AuthResponse, error) {
	return s.rotateTokens(ctx, user, "")
}

// rotateTokens stores a fresh refresh token for user. When previous is set
// the swap only happens if it is still the stored hash, so a refresh token
// cannot be redeemed twice.
func (s *AuthService) rotateTokens(ctx context.Context, user *model.User, previous string) (*types.AuthResponse, error) {
	access, err := s.GenerateToken(user)
	if err != nil {
		return nil, apperr.Unexpected("failed to sign access token", err)
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, apperr.Unexpected("failed to generate refresh token", err)
	}

	expires := s.opts.now().Add(s.cfg.RefreshTTL)
	query := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", user.ID)
	if previous != "" {
		query = query.Where("refresh_token_hash = ?", previous)
	}
	res := query.Updates(map[string]any{
		"refresh_token_hash":       hashToken(refresh),
		"refresh_token_expires_at": expires,
	})
	if res.Error != nil {
		return nil, apperr.Unexpected("failed to store refresh token", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotAuthenticated(msgInvalidRefresh)
	}

	return &types.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserProfile(user),
	}, nil
}

func newRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
