package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SourceGenerated marks recipes produced by the generation pipeline.
const SourceGenerated = "generated"

// Recipe is a stored recipe. Generated recipes carry a CacheKey so the
// search path can find them again for the same ingredient/filter set;
// recipes from other sources leave it NULL.
type Recipe struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	Name               string           `gorm:"size:255;not null" json:"name"`
	Description        string           `gorm:"type:text" json:"description"`
	Instructions       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	CookingTimeMinutes int              `gorm:"not null;index" json:"cooking_time_minutes"`
	Difficulty         string           `gorm:"size:20;not null" json:"difficulty"`
	ServingSize        int              `gorm:"not null" json:"serving_size"`
	ImageURL           string           `gorm:"size:500" json:"image_url,omitempty"`
	NutritionalInfo    JSONBMap         `gorm:"type:jsonb" json:"nutritional_info,omitempty"`
	ViewCount          int              `gorm:"not null;default:0" json:"view_count"`
	Source             string           `gorm:"size:50;not null;default:'generated'" json:"source"`
	CacheKey           *string          `gorm:"size:64;index" json:"-"`

	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	DietaryTags       []DietaryTag       `gorm:"many2many:recipe_dietary_tags;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient links a recipe to an ingredient with its quantity,
// unit and optional flag. Owned by the recipe; cascade-deleted with it.
type RecipeIngredient struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Quantity     string    `gorm:"size:50" json:"quantity"`
	Unit         string    `gorm:"size:50" json:"unit"`
	IsOptional   bool      `gorm:"not null;default:false" json:"is_optional"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

// DietaryTag is a normalized dietary label (vegetarian, gluten-free, ...).
// Created lazily the first time a generated recipe references it.
type DietaryTag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

func (t *DietaryTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (DietaryTag) TableName() string {
	return "dietary_tags"
}
