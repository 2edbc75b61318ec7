package types

import (
	"github.com/google/uuid"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
)

// UserInfo is the redacted user projection returned by auth endpoints.
// It never carries the password hash.
type UserInfo struct {
	ID        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name,omitempty"`
	LastName  string          `json:"last_name,omitempty"`
	Role      models.UserRole `json:"role"`
}

// NewUserInfo projects a user entity into its public shape.
func NewUserInfo(u *models.User) UserInfo {
	return UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int64    `json:"expires_in"`
	User         UserInfo `json:"user"`
}

// RecipeStatistics partitions a user's recipes by visibility.
type RecipeStatistics struct {
	TotalRecipes   int64 `json:"total_recipes"`
	PublicRecipes  int64 `json:"public_recipes"`
	PrivateRecipes int64 `json:"private_recipes"`
}
