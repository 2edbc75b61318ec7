package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray stores a string slice as a JSON document. Postgres keeps it
// in a jsonb column; sqlite stores the serialized text, which is enough for
// the test database.
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a cooking procedure owned by exactly one user. Its ingredient
// list is a composition: ingredients are created and replaced only through
// the owning recipe and are deleted with it.
type Recipe struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title              string           `gorm:"size:200;not null" json:"title"`
	Description        string           `gorm:"size:1000" json:"description,omitempty"`
	Instructions       string           `gorm:"type:text;not null" json:"instructions"`
	CookingTimeMinutes *int             `json:"cooking_time_minutes,omitempty"`
	PrepTimeMinutes    *int             `json:"prep_time_minutes,omitempty"`
	Servings           int              `gorm:"not null;default:1" json:"servings"`
	Category           RecipeCategory   `gorm:"size:30;not null" json:"category"`
	Difficulty         Difficulty       `gorm:"size:20;not null" json:"difficulty"`
	ImageURL           string           `gorm:"size:255" json:"image_url,omitempty"`
	IsPublic           bool             `gorm:"not null;default:false" json:"is_public"`
	IsAiGenerated      bool             `gorm:"not null;default:false" json:"is_ai_generated"`
	AverageRating      *float64         `json:"average_rating,omitempty"`
	RatingCount        int              `gorm:"not null;default:0" json:"rating_count"`
	Source             string           `gorm:"size:100" json:"source,omitempty"`
	Tags               JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	OwnerID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner              *User            `gorm:"foreignKey:OwnerID" json:"-"`
	Ingredients        []Ingredient     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// BeforeCreate assigns the primary key so the model works on databases
// without a server-side uuid default.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTimeMinutes returns prep plus cooking time. It is nil when neither
// component is set.
func (r *Recipe) TotalTimeMinutes() *int {
	if r.PrepTimeMinutes == nil && r.CookingTimeMinutes == nil {
		return nil
	}
	total := 0
	if r.PrepTimeMinutes != nil {
		total += *r.PrepTimeMinutes
	}
	if r.CookingTimeMinutes != nil {
		total += *r.CookingTimeMinutes
	}
	return &total
}

// IsOwnedBy reports whether the given user id owns the recipe. Ownership is
// identity equality, never inference.
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && r.OwnerID == userID
}

// NormalizeTags lower-cases and de-duplicates tags while keeping their
// submission order.
func NormalizeTags(tags []string) JSONBStringArray {
	seen := make(map[string]struct{}, len(tags))
	normalized := make(JSONBStringArray, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		normalized = append(normalized, t)
	}
	return normalized
}
