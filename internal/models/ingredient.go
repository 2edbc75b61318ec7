package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is one line item in a recipe's ingredient list. It has no access
// rules of its own; it inherits the parent recipe's. OrderPosition is assigned
// by the recipe service in submission order, never by the client.
type Ingredient struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"-"`
	Name          string             `gorm:"size:100;not null" json:"name"`
	Quantity      float64            `gorm:"not null" json:"quantity"`
	Unit          MeasurementUnit    `gorm:"size:20;not null" json:"unit"`
	Notes         string             `gorm:"size:200" json:"notes,omitempty"`
	Category      IngredientCategory `gorm:"size:20;not null;default:'OTHER'" json:"category"`
	IsOptional    bool               `gorm:"not null;default:false" json:"is_optional"`
	OrderPosition int                `gorm:"not null" json:"order_position"`

	// Optional nutrition facts per 100 grams.
	CaloriesPer100g *float64 `json:"calories_per_100g,omitempty"`
	ProteinPer100g  *float64 `json:"protein_per_100g,omitempty"`
	CarbsPer100g    *float64 `json:"carbs_per_100g,omitempty"`
	FatPer100g      *float64 `json:"fat_per_100g,omitempty"`
	FiberPer100g    *float64 `json:"fiber_per_100g,omitempty"`
}

// BeforeCreate assigns the primary key so the model works on databases
// without a server-side uuid default.
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// QuantityInGrams converts the ingredient quantity to grams when the unit
// supports it.
func (i *Ingredient) QuantityInGrams() (float64, bool) {
	return i.Unit.ConvertToGrams(i.Quantity)
}
