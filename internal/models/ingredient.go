package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultIngredientUnit = "grams"

// Ingredient is shared reference data. Names are unique and case-sensitive.
type Ingredient struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name        string    `gorm:"size:150;not null;uniqueIndex" json:"name"`
	DefaultUnit string    `gorm:"size:20;not null;default:'grams'" json:"default_unit"`
	Category    string    `gorm:"size:50" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.DefaultUnit == "" {
		i.DefaultUnit = DefaultIngredientUnit
	}
	return nil
}
