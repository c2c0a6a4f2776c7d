package types

import "github.com/google/uuid"

// UserProfile is the public view of a user
type UserProfile struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"userName"`
	Email       string    `json:"email"`
	AvatarColor string    `json:"avatarColor"`
}

// AuthResponse is returned by register, login and refresh
type AuthResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         UserProfile `json:"user"`
}
