package testhelpers

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/internal/model"
)

// TestPassword is the plain-text password of users made by CreateUser
const TestPassword = "Password1"

// CreateUser inserts a user named name with TestPassword
func CreateUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		UserName:     name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: string(hash),
		AvatarColor:  "#4ECDC4",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

// Category returns the seeded category called name
func Category(t *testing.T, db *gorm.DB, name string) model.Category {
	t.Helper()
	var c model.Category
	if err := db.Where("name = ?", name).First(&c).Error; err != nil {
		t.Fatalf("category %s not seeded: %v", name, err)
	}
	return c
}

// Ingredient returns the seeded ingredient called name
func Ingredient(t *testing.T, db *gorm.DB, name string) model.Ingredient {
	t.Helper()
	var i model.Ingredient
	if err := db.Where("normalized_name = ?", strings.ToLower(name)).First(&i).Error; err != nil {
		t.Fatalf("ingredient %s not seeded: %v", name, err)
	}
	return i
}
