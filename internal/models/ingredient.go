package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a canonical ingredient. Name is the normalized form and
// is unique; surface variants discovered later are merged into Synonyms
// rather than creating duplicates.
type Ingredient struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string           `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category  string           `gorm:"size:50;not null" json:"category"`
	Synonyms  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"synonyms"`
	CreatedAt time.Time        `json:"created_at"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
