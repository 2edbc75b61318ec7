package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

const (
	draftKeyPrefix = "recipe:draft:"
	draftTTL       = 24 * time.Hour
)

const generateRecipeSystemPrompt = `You are a professional chef and recipe creator. Create detailed, realistic recipes from the ingredients the user provides.

Return the recipe in the following JSON format:
{
    "title": "Recipe Name",
    "description": "Brief description of the dish",
    "instructions": "Step-by-step cooking instructions",
    "cookingTimeMinutes": 30,
    "prepTimeMinutes": 15,
    "servings": 4,
    "category": "MAIN_COURSE",
    "difficulty": "MEDIUM",
    "ingredients": [
        {
            "name": "ingredient name",
            "quantity": 1.5,
            "unit": "CUP",
            "category": "VEGETABLES",
            "isOptional": false
        }
    ],
    "tags": ["tag1", "tag2"]
}

Important guidelines:
- Use only the provided ingredients as main ingredients, you can add common seasonings and basic ingredients
- Make the recipe realistic and achievable
- Provide detailed, step-by-step instructions
- Use appropriate measurement units (CUP, TABLESPOON, TEASPOON, GRAM, etc.)
- Choose appropriate category (APPETIZER, MAIN_COURSE, SIDE_DISH, DESSERT, etc.)
- Choose appropriate difficulty (BEGINNER, EASY, MEDIUM, HARD, EXPERT)
- Add relevant tags
- Ensure the JSON is valid and properly formatted`

const analyzeNutritionSystemPrompt = `You are a professional nutritionist. Analyze the nutritional content of the recipe the user provides.

Provide a detailed nutritional analysis in the following JSON format:
{
    "perServing": {
        "calories": 450,
        "protein": 25.5,
        "carbohydrates": 35.2,
        "fat": 18.7,
        "fiber": 8.3,
        "sugar": 12.1,
        "sodium": 890
    },
    "perRecipe": {
        "calories": 1800,
        "protein": 102.0,
        "carbohydrates": 140.8,
        "fat": 74.8,
        "fiber": 33.2,
        "sugar": 48.4,
        "sodium": 3560
    },
    "macronutrientRatios": {
        "proteinPercentage": 23,
        "carbohydratePercentage": 31,
        "fatPercentage": 37
    },
    "healthScore": 8.5,
    "dietaryTags": ["high-protein", "low-carb"],
    "allergens": ["dairy", "nuts"],
    "nutritionNotes": "Summary of the nutritional profile."
}

Guidelines:
- Provide realistic nutritional estimates based on the ingredients and quantities
- All nutritional values should be in grams unless otherwise specified
- Health score should be 1-10 (10 being the healthiest)
- Include relevant dietary tags and allergen warnings
- Ensure JSON is valid and properly formatted`

const winePairingSystemPrompt = `You are a professional sommelier with extensive knowledge of wine pairings. Recommend the best wine pairings for the recipe the user provides.

Provide wine pairing suggestions in the following JSON format:
{
    "primaryRecommendation": {
        "wineType": "Pinot Noir",
        "specificWines": ["Willamette Valley Pinot Noir", "Burgundy Gevrey-Chambertin"],
        "reasoning": "Why this wine complements the dish",
        "servingTemperature": "60-65F",
        "priceRange": "$25-50"
    },
    "alternativeRecommendations": [
        {
            "wineType": "Chardonnay",
            "specificWines": ["Chablis"],
            "reasoning": "Why this works as an alternative",
            "servingTemperature": "45-50F",
            "priceRange": "$20-40"
        }
    ],
    "nonAlcoholicOptions": [
        {
            "beverage": "Sparkling Apple Cider",
            "reasoning": "Why this complements the dish"
        }
    ],
    "servingSuggestions": "Practical serving advice."
}

Guidelines:
- Consider the main flavors, textures, and cooking methods
- Provide specific wine recommendations with regions when possible
- Include both premium and accessible price options
- Include non-alcoholic alternatives
- Ensure JSON is valid and properly formatted`

// AIService generates recipes, nutrition analyses, and wine pairings through
// a chat-completion model. Generated recipes are parked as drafts in Redis
// until the user saves or discards them.
type AIService struct {
	client *openai.Client
	model  string
	redis  *redis.Client
	log    zerolog.Logger
}

// NewAIService creates an AIService against any OpenAI-compatible endpoint.
// baseURL may be empty to use the default API host.
func NewAIService(apiKey, baseURL, model string, rdb *redis.Client, log zerolog.Logger) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		redis:  rdb,
		log:    log.With().Str("service", "ai").Logger(),
	}
}

// generatedIngredient mirrors the ingredient shape the model is prompted to emit.
type generatedIngredient struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Category   string  `json:"category"`
	IsOptional bool    `json:"isOptional"`
}

// generatedRecipe mirrors the recipe shape the model is prompted to emit.
type generatedRecipe struct {
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	Instructions       string                `json:"instructions"`
	CookingTimeMinutes *int                  `json:"cookingTimeMinutes"`
	PrepTimeMinutes    *int                  `json:"prepTimeMinutes"`
	Servings           *int                  `json:"servings"`
	Category           string                `json:"category"`
	Difficulty         string                `json:"difficulty"`
	Ingredients        []generatedIngredient `json:"ingredients"`
	Tags               []string              `json:"tags"`
}

// RecipeDraft is a generated recipe parked in Redis, keyed by a fresh id and
// scoped to the requesting user.
type RecipeDraft struct {
	ID        uuid.UUID           `json:"id"`
	UserID    uuid.UUID           `json:"user_id"`
	Recipe    types.RecipeRequest `json:"recipe"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// GenerateRecipe asks the model for a recipe built from the given ingredients
// and returns it as a payload ready for the recipe service.
func (s *AIService) GenerateRecipe(ctx context.Context, req *types.GenerateRecipeRequest) (*types.RecipeRequest, error) {
	prompt := "Create a detailed recipe using the following ingredients: " + strings.Join(req.Ingredients, ", ") + "."
	if cuisine := strings.TrimSpace(req.Cuisine); cuisine != "" {
		prompt += "\nStyle: Create this as a " + cuisine + " cuisine dish."
	}
	if difficulty := strings.TrimSpace(req.Difficulty); difficulty != "" {
		prompt += "\nDifficulty: Make this recipe " + difficulty + " level."
	}

	raw, err := s.complete(ctx, generateRecipeSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	cleaned, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var generated generatedRecipe
	if err := json.Unmarshal([]byte(cleaned), &generated); err != nil {
		s.log.Warn().Err(err).Msg("model returned unparseable recipe")
		return nil, ErrInvalidAIResponse
	}

	return s.toRecipeRequest(&generated), nil
}

// AnalyzeNutrition returns the model's nutritional analysis of a recipe as a
// cleaned JSON document.
func (s *AIService) AnalyzeNutrition(ctx context.Context, recipe *models.Recipe) (json.RawMessage, error) {
	var ingredients strings.Builder
	for i := range recipe.Ingredients {
		ing := &recipe.Ingredients[i]
		fmt.Fprintf(&ingredients, "- %g %s %s\n", ing.Quantity, ing.Unit.DisplayName(ing.Quantity != 1), ing.Name)
	}

	prompt := fmt.Sprintf("Analyze the nutritional content of this recipe:\n\nRecipe: %s\nServings: %d\nIngredients:\n%s",
		recipe.Title, recipe.Servings, ingredients.String())

	raw, err := s.complete(ctx, analyzeNutritionSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	cleaned, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(cleaned), nil
}

// SuggestWinePairing returns the model's wine pairing suggestions for a
// recipe as a cleaned JSON document.
func (s *AIService) SuggestWinePairing(ctx context.Context, recipe *models.Recipe) (json.RawMessage, error) {
	names := make([]string, 0, len(recipe.Ingredients))
	for i := range recipe.Ingredients {
		names = append(names, recipe.Ingredients[i].Name)
	}
	description := recipe.Description
	if description == "" {
		description = "No description provided"
	}

	prompt := fmt.Sprintf(
		"Recommend wine pairings for this recipe:\n\nRecipe: %s\nDescription: %s\nCategory: %s\nMain Ingredients: %s\nCooking Method: Based on the instructions, this appears to be %s",
		recipe.Title, description, recipe.Category.DisplayName(), strings.Join(names, ", "),
		cookingStyle(recipe.Instructions))

	raw, err := s.complete(ctx, winePairingSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	cleaned, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(cleaned), nil
}

// SaveDraft parks a generated recipe in Redis for a day.
func (s *AIService) SaveDraft(ctx context.Context, userID uuid.UUID, recipe *types.RecipeRequest) (*RecipeDraft, error) {
	now := time.Now()
	draft := &RecipeDraft{
		ID:        uuid.New(),
		UserID:    userID,
		Recipe:    *recipe,
		CreatedAt: now,
		UpdatedAt: now,
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKeyPrefix+draft.ID.String(), data, draftTTL).Err(); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return draft, nil
}

// GetDraft retrieves a draft owned by the given user. Another user's draft is
// indistinguishable from a missing one.
func (s *AIService) GetDraft(ctx context.Context, userID, draftID uuid.UUID) (*RecipeDraft, error) {
	data, err := s.redis.Get(ctx, draftKeyPrefix+draftID.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	var draft RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	if draft.UserID != userID {
		return nil, ErrRecipeNotFound
	}
	return &draft, nil
}

// DeleteDraft discards a draft owned by the given user.
func (s *AIService) DeleteDraft(ctx context.Context, userID, draftID uuid.UUID) error {
	if _, err := s.GetDraft(ctx, userID, draftID); err != nil {
		return err
	}
	return s.redis.Del(ctx, draftKeyPrefix+draftID.String()).Err()
}

func (s *AIService) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrInvalidAIResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *AIService) toRecipeRequest(g *generatedRecipe) *types.RecipeRequest {
	ingredients := make([]types.IngredientRequest, 0, len(g.Ingredients))
	for _, ing := range g.Ingredients {
		optional := ing.IsOptional
		ingredients = append(ingredients, types.IngredientRequest{
			Name:       ing.Name,
			Quantity:   ing.Quantity,
			Unit:       strings.ToUpper(ing.Unit),
			Category:   strings.ToUpper(ing.Category),
			IsOptional: &optional,
		})
	}
	isPublic := false
	return &types.RecipeRequest{
		Title:              g.Title,
		Description:        g.Description,
		Instructions:       g.Instructions,
		CookingTimeMinutes: g.CookingTimeMinutes,
		PrepTimeMinutes:    g.PrepTimeMinutes,
		Servings:           g.Servings,
		Category:           strings.ToUpper(g.Category),
		Difficulty:         strings.ToUpper(g.Difficulty),
		IsPublic:           &isPublic,
		IsAiGenerated:      true,
		Source:             "AI Generated",
		Tags:               g.Tags,
		Ingredients:        ingredients,
	}
}

// ExtractJSON pulls the JSON object out of a model response that may be
// wrapped in prose or code fences: everything from the first '{' through the
// last '}'. The result must parse as JSON.
func ExtractJSON(response string) (string, error) {
	start := strings.IndexByte(response, '{')
	if start < 0 {
		return "", ErrInvalidAIResponse
	}
	end := strings.LastIndexByte(response, '}')
	if end < start {
		return "", ErrInvalidAIResponse
	}
	candidate := response[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", ErrInvalidAIResponse
	}
	return candidate, nil
}

func cookingStyle(instructions string) string {
	lower := strings.ToLower(instructions)
	switch {
	case strings.Contains(lower, "grill") || strings.Contains(lower, "barbecue"):
		return "grilled"
	case strings.Contains(lower, "roast") || strings.Contains(lower, "bake"):
		return "roasted/baked"
	case strings.Contains(lower, "fry") || strings.Contains(lower, "saute"):
		return "pan-fried/sauteed"
	case strings.Contains(lower, "steam"):
		return "steamed"
	case strings.Contains(lower, "boil") || strings.Contains(lower, "simmer"):
		return "boiled/simmered"
	case strings.Contains(lower, "braise"):
		return "braised"
	default:
		return "mixed cooking methods"
	}
}
