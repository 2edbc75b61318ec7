package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

// RecipeService enforces the ownership and visibility rules over recipes and
// provides the composable search queries. Ingredients are only ever touched
// through their owning recipe: create and update replace the whole list.
type RecipeService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(db *gorm.DB, log zerolog.Logger) *RecipeService {
	return &RecipeService{
		db:  db,
		log: log.With().Str("service", "recipe").Logger(),
	}
}

// Create builds and persists a recipe owned by the given user. Ingredient
// order positions are assigned 1..N in submission order.
func (s *RecipeService) Create(ctx context.Context, req *types.RecipeRequest, ownerID uuid.UUID) (*models.Recipe, error) {
	var owner models.User
	if err := s.db.WithContext(ctx).First(&owner, "id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	recipe, err := s.buildRecipe(req)
	if err != nil {
		return nil, err
	}
	recipe.OwnerID = owner.ID

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}

	s.log.Info().Str("recipe_id", recipe.ID.String()).Str("owner", owner.Username).Msg("recipe created")
	return s.reload(ctx, recipe.ID)
}

// Update fully replaces a recipe's mutable fields and its entire ingredient
// list. Only the owner may update; a missing recipe and a foreign recipe both
// come back as ErrAccessDenied so the endpoint does not leak existence.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, req *types.RecipeRequest, callerID uuid.UUID) (*models.Recipe, error) {
	existing, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	replacement, err := s.buildRecipe(req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Old ingredient rows are discarded, never patched.
		if err := tx.Delete(&models.Ingredient{}, "recipe_id = ?", existing.ID).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"title":                replacement.Title,
			"description":          replacement.Description,
			"instructions":         replacement.Instructions,
			"cooking_time_minutes": replacement.CookingTimeMinutes,
			"prep_time_minutes":    replacement.PrepTimeMinutes,
			"servings":             replacement.Servings,
			"category":             replacement.Category,
			"difficulty":           replacement.Difficulty,
			"image_url":            replacement.ImageURL,
			"is_public":            replacement.IsPublic,
			"source":               replacement.Source,
			"tags":                 replacement.Tags,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
			return err
		}
		for i := range replacement.Ingredients {
			replacement.Ingredients[i].RecipeID = existing.ID
		}
		if len(replacement.Ingredients) > 0 {
			if err := tx.Create(&replacement.Ingredients).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, existing.ID)
}

// GetByID returns a recipe, enforcing visibility: a public recipe is visible
// to anyone, a private one only to its owner. Anonymous callers pass uuid.Nil
// and are always denied private recipes.
func (s *RecipeService) GetByID(ctx context.Context, id, callerID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.IsPublic && !recipe.IsOwnedBy(callerID) {
		return nil, ErrAccessDenied
	}
	return recipe, nil
}

// GetPublicByID returns a recipe without consulting any caller identity.
// Private recipes are denied even to their owner through this path.
func (s *RecipeService) GetPublicByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.reload(ctx, id)
	if err != nil {
		return nil, err
	}
	if !recipe.IsPublic {
		return nil, ErrAccessDenied
	}
	return recipe, nil
}

// Delete removes an owned recipe; its ingredients go with it.
func (s *RecipeService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	recipe, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Ingredient{}, "recipe_id = ?", recipe.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipe.ID).Error
	})
}

// ToggleVisibility flips the public flag on an owned recipe.
func (s *RecipeService) ToggleVisibility(ctx context.Context, id, callerID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(recipe).Update("is_public", !recipe.IsPublic).Error; err != nil {
		return nil, err
	}
	return s.reload(ctx, recipe.ID)
}

// SetImageURL records the stored image location on an owned recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, id, callerID uuid.UUID, url string) (*models.Recipe, error) {
	recipe, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(recipe).Update("image_url", url).Error; err != nil {
		return nil, err
	}
	return s.reload(ctx, recipe.ID)
}

// Search combines the optional filters with logical AND. The term matches
// title or description as a case-insensitive substring. publicOnly=false does
// not scope results to the caller; it simply drops the visibility filter, as
// the route exposing it requires authentication.
func (s *RecipeService) Search(ctx context.Context, req *types.SearchRequest, page types.Pageable) (types.Page[models.Recipe], error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if term := strings.TrimSpace(req.Term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if req.Category != "" {
		category, err := models.ParseRecipeCategory(req.Category)
		if err != nil {
			return types.Page[models.Recipe]{}, NewValidationError(map[string]string{"category": err.Error()})
		}
		query = query.Where("category = ?", category)
	}
	if req.Difficulty != "" {
		difficulty, err := models.ParseDifficulty(req.Difficulty)
		if err != nil {
			return types.Page[models.Recipe]{}, NewValidationError(map[string]string{"difficulty": err.Error()})
		}
		query = query.Where("difficulty = ?", difficulty)
	}
	if req.MinCookingTime != nil {
		query = query.Where("cooking_time_minutes >= ?", *req.MinCookingTime)
	}
	if req.MaxCookingTime != nil {
		query = query.Where("cooking_time_minutes <= ?", *req.MaxCookingTime)
	}
	if req.PublicOnly {
		query = query.Where("is_public = ?", true)
	}

	return s.paginate(query, page)
}

// SearchByIngredients returns recipes containing any of the given ingredient
// names, matched case-insensitively.
func (s *RecipeService) SearchByIngredients(ctx context.Context, names []string, page types.Pageable) (types.Page[models.Recipe], error) {
	lowered := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			lowered = append(lowered, n)
		}
	}
	if len(lowered) == 0 {
		return types.NewPage([]models.Recipe{}, page, 0), nil
	}

	matching := s.db.Model(&models.Ingredient{}).
		Select("recipe_id").
		Where("LOWER(name) IN ?", lowered)
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id IN (?)", matching)

	return s.paginate(query, page)
}

// ListByOwner returns the recipes a user owns, both public and private.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page types.Pageable) (types.Page[models.Recipe], error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("owner_id = ?", ownerID)
	return s.paginate(query, page)
}

// ListPublic returns all public recipes.
func (s *RecipeService) ListPublic(ctx context.Context, page types.Pageable) (types.Page[models.Recipe], error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("is_public = ?", true)
	return s.paginate(query, page)
}

// ListByCategory returns recipes in a category, optionally public only.
func (s *RecipeService) ListByCategory(ctx context.Context, category models.RecipeCategory, publicOnly bool, page types.Pageable) (types.Page[models.Recipe], error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("category = ?", category)
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}
	return s.paginate(query, page)
}

// TopRated returns public rated recipes at or above the minimum average,
// best first.
func (s *RecipeService) TopRated(ctx context.Context, minRating float64, page types.Pageable) (types.Page[models.Recipe], error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("is_public = ? AND rating_count > 0 AND average_rating >= ?", true, minRating).
		Order("average_rating DESC, rating_count DESC")
	return s.paginateOrdered(query, page)
}

// MostPopular returns public rated recipes ordered by how often they were rated.
func (s *RecipeService) MostPopular(ctx context.Context, page types.Pageable) (types.Page[models.Recipe], error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("is_public = ? AND rating_count > 0", true).
		Order("rating_count DESC")
	return s.paginateOrdered(query, page)
}

// Recent returns the newest public recipes.
func (s *RecipeService) Recent(ctx context.Context, page types.Pageable) (types.Page[models.Recipe], error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("is_public = ?", true).
		Order("created_at DESC")
	return s.paginateOrdered(query, page)
}

// Statistics partitions a user's recipes by visibility.
func (s *RecipeService) Statistics(ctx context.Context, ownerID uuid.UUID) (*types.RecipeStatistics, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	stats := &types.RecipeStatistics{TotalRecipes: int64(len(recipes))}
	for i := range recipes {
		if recipes[i].IsPublic {
			stats.PublicRecipes++
		} else {
			stats.PrivateRecipes++
		}
	}
	return stats, nil
}

// findOwned loads a recipe only when the caller owns it. Existence is not
// revealed to non-owners.
func (s *RecipeService) findOwned(ctx context.Context, id, callerID uuid.UUID) (*models.Recipe, error) {
	if callerID == uuid.Nil {
		return nil, ErrAccessDenied
	}
	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "id = ? AND owner_id = ?", id, callerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) reload(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_position ASC")
		}).
		Preload("Owner").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (s *RecipeService) paginate(query *gorm.DB, page types.Pageable) (types.Page[models.Recipe], error) {
	return s.fetchPage(query.Order(page.OrderClause()), query, page)
}

// paginateOrdered keeps the ordering already attached to the query instead of
// applying the pageable's sort.
func (s *RecipeService) paginateOrdered(query *gorm.DB, page types.Pageable) (types.Page[models.Recipe], error) {
	return s.fetchPage(query, query, page)
}

func (s *RecipeService) fetchPage(query, countQuery *gorm.DB, page types.Pageable) (types.Page[models.Recipe], error) {
	var total int64
	if err := countQuery.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return types.Page[models.Recipe]{}, err
	}

	var recipes []models.Recipe
	err := query.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_position ASC")
		}).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&recipes).Error
	if err != nil {
		return types.Page[models.Recipe]{}, err
	}
	return types.NewPage(recipes, page, total), nil
}

// buildRecipe validates a request and maps it to a fresh aggregate with
// ingredient positions assigned in submission order.
func (s *RecipeService) buildRecipe(req *types.RecipeRequest) (*models.Recipe, error) {
	fields := map[string]string{}

	category, err := models.ParseRecipeCategory(req.Category)
	if err != nil {
		fields["category"] = err.Error()
	}
	difficulty, err := models.ParseDifficulty(req.Difficulty)
	if err != nil {
		fields["difficulty"] = err.Error()
	}

	servings := 1
	if req.Servings != nil {
		servings = *req.Servings
	}

	ingredients := make([]models.Ingredient, 0, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		unit, err := models.ParseMeasurementUnit(ing.Unit)
		if err != nil {
			fields["ingredients"] = err.Error()
			continue
		}
		ingCategory := models.IngredientOther
		if ing.Category != "" {
			if ingCategory, err = models.ParseIngredientCategory(ing.Category); err != nil {
				fields["ingredients"] = err.Error()
				continue
			}
		}
		optional := false
		if ing.IsOptional != nil {
			optional = *ing.IsOptional
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:            ing.Name,
			Quantity:        ing.Quantity,
			Unit:            unit,
			Notes:           ing.Notes,
			Category:        ingCategory,
			IsOptional:      optional,
			OrderPosition:   i + 1,
			CaloriesPer100g: ing.CaloriesPer100g,
			ProteinPer100g:  ing.ProteinPer100g,
			CarbsPer100g:    ing.CarbsPer100g,
			FatPer100g:      ing.FatPer100g,
			FiberPer100g:    ing.FiberPer100g,
		})
	}

	if len(fields) > 0 {
		return nil, NewValidationError(fields)
	}

	isPublic := false
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	return &models.Recipe{
		Title:              req.Title,
		Description:        req.Description,
		Instructions:       req.Instructions,
		CookingTimeMinutes: req.CookingTimeMinutes,
		PrepTimeMinutes:    req.PrepTimeMinutes,
		Servings:           servings,
		Category:           category,
		Difficulty:         difficulty,
		ImageURL:           req.ImageURL,
		IsPublic:           isPublic,
		IsAiGenerated:      req.IsAiGenerated,
		Source:             req.Source,
		Tags:               models.NormalizeTags(req.Tags),
		Ingredients:        ingredients,
	}, nil
}
