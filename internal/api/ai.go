package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/middleware"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/service"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

// AIHandler exposes the recipe generation, nutrition analysis, and wine
// pairing endpoints. Everything here requires authentication and generation
// is rate limited per user.
type AIHandler struct {
	ai      *service.AIService
	recipes *service.RecipeService
	limiter *middleware.RateLimiter
	log     zerolog.Logger
}

// NewAIHandler creates a new AIHandler instance.
func NewAIHandler(ai *service.AIService, recipes *service.RecipeService, limiter *middleware.RateLimiter, log zerolog.Logger) *AIHandler {
	return &AIHandler{
		ai:      ai,
		recipes: recipes,
		limiter: limiter,
		log:     log.With().Str("handler", "ai").Logger(),
	}
}

// RegisterRoutes mounts the AI endpoints on the given group.
func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai", middleware.RequireAuth())
	{
		ai.POST("/generate-recipe", h.limiter.Middleware(), h.GenerateRecipe)
		ai.GET("/nutrition/:id", h.AnalyzeNutrition)
		ai.GET("/wine-pairing/:id", h.SuggestWinePairing)
		ai.GET("/drafts/:draftId", h.GetDraft)
		ai.DELETE("/drafts/:draftId", h.DeleteDraft)
		ai.POST("/drafts/:draftId/save", h.SaveDraftAsRecipe)
	}
}

// GenerateRecipe asks the model for a recipe and parks it as a draft. Nothing
// reaches the database until the draft is explicitly saved.
func (h *AIHandler) GenerateRecipe(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	generated, err := h.ai.GenerateRecipe(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	draft, err := h.ai.SaveDraft(c.Request.Context(), middleware.CallerID(c), generated)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *AIHandler) AnalyzeNutrition(c *gin.Context) {
	recipe, ok := h.loadVisibleRecipe(c)
	if !ok {
		return
	}

	analysis, err := h.ai.AnalyzeNutrition(c.Request.Context(), recipe)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", analysis)
}

func (h *AIHandler) SuggestWinePairing(c *gin.Context) {
	recipe, ok := h.loadVisibleRecipe(c)
	if !ok {
		return
	}

	pairing, err := h.ai.SuggestWinePairing(c.Request.Context(), recipe)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", pairing)
}

func (h *AIHandler) GetDraft(c *gin.Context) {
	draftID, ok := uuidParam(c, "draftId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}

	draft, err := h.ai.GetDraft(c.Request.Context(), middleware.CallerID(c), draftID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *AIHandler) DeleteDraft(c *gin.Context) {
	draftID, ok := uuidParam(c, "draftId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}

	if err := h.ai.DeleteDraft(c.Request.Context(), middleware.CallerID(c), draftID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SaveDraftAsRecipe turns a parked draft into a persisted recipe owned by the
// caller, then discards the draft.
func (h *AIHandler) SaveDraftAsRecipe(c *gin.Context) {
	draftID, ok := uuidParam(c, "draftId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid draft id"})
		return
	}

	callerID := middleware.CallerID(c)
	draft, err := h.ai.GetDraft(c.Request.Context(), callerID, draftID)
	if err != nil {
		writeError(c, err)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), &draft.Recipe, callerID)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.ai.DeleteDraft(c.Request.Context(), callerID, draftID); err != nil {
		h.log.Warn().Err(err).Str("draft_id", draftID.String()).Msg("failed to discard saved draft")
	}

	c.JSON(http.StatusCreated, recipe)
}

// loadVisibleRecipe resolves the :id path parameter under the caller's
// visibility rules and writes the error response itself on failure.
func (h *AIHandler) loadVisibleRecipe(c *gin.Context) (*models.Recipe, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return nil, false
	}

	recipe, err := h.recipes.GetByID(c.Request.Context(), id, middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return recipe, true
}
