package testhelpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
)

// DefaultPassword is the plaintext behind every fixture user's hash.
const DefaultPassword = "password123"

// CreateTestUser inserts an enabled user with a real bcrypt hash so login
// flows work against fixtures.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Enabled:      true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create fixture user: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a minimal valid recipe owned by the given user.
func CreateTestRecipe(t *testing.T, db *gorm.DB, owner *models.User, title string, public bool) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Title:        title,
		Instructions: "Combine everything and cook until done.",
		Servings:     2,
		Category:     models.CategoryMainCourse,
		Difficulty:   models.DifficultyEasy,
		IsPublic:     public,
		OwnerID:      owner.ID,
		Ingredients: []models.Ingredient{
			{Name: "salt", Quantity: 1, Unit: models.UnitTeaspoon, Category: models.IngredientSpices, OrderPosition: 1},
		},
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create fixture recipe: %v", err)
	}
	return recipe
}
