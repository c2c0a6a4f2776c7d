package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Units lists the accepted units of measure
var Units = []string{"g", "kg", "ml", "l", "pcs", "tbsp", "tsp", "cup", "oz", "lb"}

// IsValidUnit reports whether unit is one of Units, ignoring case
func IsValidUnit(unit string) bool {
	for _, u := range Units {
		if strings.EqualFold(u, unit) {
			return true
		}
	}
	return false
}

// Ingredient is shared by all users. Names are unique regardless of case,
// enforced through NormalizedName.
type Ingredient struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	NormalizedName string    `gorm:"size:100;uniqueIndex;not null" json:"-"`
	Unit           string    `gorm:"size:10;not null" json:"unit"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i *Ingredient) BeforeSave(tx *gorm.DB) error {
	i.Name = strings.TrimSpace(i.Name)
	i.NormalizedName = strings.ToLower(i.Name)
	i.Unit = strings.ToLower(i.Unit)
	return nil
}
