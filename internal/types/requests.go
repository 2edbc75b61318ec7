package types

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=100"`
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
}

// LoginRequest is the body for POST /auth/login. The identifier may be a
// username or an email address.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

// RefreshRequest is the body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ValidateTokenRequest is the body for POST /auth/validate.
type ValidateTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// ChangePasswordRequest is the body for POST /auth/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=100"`
}

// IngredientRequest is one ingredient line inside a recipe payload. Order is
// taken from the slice position; clients cannot set positions directly.
type IngredientRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=100"`
	Quantity        float64  `json:"quantity" binding:"required,gte=0.01,lte=99999.99"`
	Unit            string   `json:"unit" binding:"required"`
	Notes           string   `json:"notes" binding:"max=200"`
	Category        string   `json:"category"`
	IsOptional      *bool    `json:"is_optional"`
	CaloriesPer100g *float64 `json:"calories_per_100g" binding:"omitempty,gte=0"`
	ProteinPer100g  *float64 `json:"protein_per_100g" binding:"omitempty,gte=0"`
	CarbsPer100g    *float64 `json:"carbs_per_100g" binding:"omitempty,gte=0"`
	FatPer100g      *float64 `json:"fat_per_100g" binding:"omitempty,gte=0"`
	FiberPer100g    *float64 `json:"fiber_per_100g" binding:"omitempty,gte=0"`
}

// RecipeRequest is the body for creating or fully replacing a recipe.
// Updates are full-replace: every mutable field and the whole ingredient list
// are taken from this payload, never merged.
type RecipeRequest struct {
	Title              string              `json:"title" binding:"required,min=3,max=200"`
	Description        string              `json:"description" binding:"max=1000"`
	Instructions       string              `json:"instructions" binding:"required,min=10"`
	CookingTimeMinutes *int                `json:"cooking_time_minutes" binding:"omitempty,gte=1,lte=1440"`
	PrepTimeMinutes    *int                `json:"prep_time_minutes" binding:"omitempty,gte=0,lte=720"`
	Servings           *int                `json:"servings" binding:"omitempty,gte=1,lte=50"`
	Category           string              `json:"category" binding:"required"`
	Difficulty         string              `json:"difficulty" binding:"required"`
	ImageURL           string              `json:"image_url" binding:"max=255"`
	IsPublic           *bool               `json:"is_public"`
	Source             string              `json:"source" binding:"max=100"`
	Tags               []string            `json:"tags"`
	Ingredients        []IngredientRequest `json:"ingredients" binding:"dive"`

	// IsAiGenerated is set internally when a recipe comes out of the
	// generation pipeline. Clients cannot claim it through the JSON body.
	IsAiGenerated bool `json:"-"`
}

// SearchRequest carries the optional, AND-combined recipe search filters.
type SearchRequest struct {
	Term           string
	Category       string
	Difficulty     string
	MinCookingTime *int
	MaxCookingTime *int
	PublicOnly     bool
}

// GenerateRecipeRequest is the body for POST /ai/generate-recipe.
type GenerateRecipeRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Cuisine     string   `json:"cuisine" binding:"max=50"`
	Difficulty  string   `json:"difficulty" binding:"max=20"`
}
