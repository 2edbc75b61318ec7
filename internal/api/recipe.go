package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/middleware"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/models"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/service"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

// RecipeHandler exposes the recipe CRUD, search, and discovery endpoints.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  *service.ImageService
	log     zerolog.Logger
}

// NewRecipeHandler creates a new RecipeHandler. The image service may be nil
// when no object storage is configured; the upload endpoint then returns 503.
func NewRecipeHandler(recipes *service.RecipeService, images *service.ImageService, log zerolog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		images:  images,
		log:     log.With().Str("handler", "recipe").Logger(),
	}
}

// RegisterRoutes mounts the recipe endpoints on the given group.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListPublic)
		recipes.GET("/top-rated", h.TopRated)
		recipes.GET("/popular", h.MostPopular)
		recipes.GET("/recent", h.Recent)
		recipes.GET("/category/:category", h.ListByCategory)
		recipes.GET("/:id", h.Get)
		recipes.GET("/:id/public", h.GetPublic)

		authed := recipes.Group("", middleware.RequireAuth())
		{
			authed.POST("", h.Create)
			authed.PUT("/:id", h.Update)
			authed.DELETE("/:id", h.Delete)
			authed.POST("/:id/toggle-visibility", h.ToggleVisibility)
			authed.POST("/:id/image", h.UploadImage)
			authed.GET("/my", h.ListMine)
			authed.GET("/search", h.Search)
			authed.GET("/search/ingredients", h.SearchByIngredients)
			authed.GET("/statistics", h.Statistics)
		}
	}
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), &req, middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	recipe, err := h.recipes.Update(c.Request.Context(), id, &req, middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// Get serves a single recipe with visibility rules applied; anonymous
// requests can only see public recipes.
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetByID(c.Request.Context(), id, middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) GetPublic(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.GetPublicByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id, middleware.CallerID(c)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ToggleVisibility(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipes.ToggleVisibility(c.Request.Context(), id, middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	callerID := middleware.CallerID(c)

	// Ownership is checked before touching storage.
	if _, err := h.recipes.GetByID(c.Request.Context(), id, callerID); err != nil {
		writeError(c, err)
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		writeError(c, err)
		return
	}

	recipe, err := h.recipes.SetImageURL(c.Request.Context(), id, callerID, url)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ListPublic(c *gin.Context) {
	page, err := h.recipes.ListPublic(c.Request.Context(), pageableFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) ListMine(c *gin.Context) {
	page, err := h.recipes.ListByOwner(c.Request.Context(), middleware.CallerID(c), pageableFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) ListByCategory(c *gin.Context) {
	category, err := models.ParseRecipeCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publicOnly := c.DefaultQuery("public_only", "true") != "false"
	page, err := h.recipes.ListByCategory(c.Request.Context(), category, publicOnly, pageableFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Search combines the optional filters with AND semantics. public_only
// defaults to true; passing false widens the search to every recipe.
func (h *RecipeHandler) Search(c *gin.Context) {
	req := types.SearchRequest{
		Term:           c.Query("term"),
		Category:       c.Query("category"),
		Difficulty:     c.Query("difficulty"),
		MinCookingTime: intQuery(c, "min_cooking_time"),
		MaxCookingTime: intQuery(c, "max_cooking_time"),
		PublicOnly:     c.DefaultQuery("public_only", "true") != "false",
	}

	page, err := h.recipes.Search(c.Request.Context(), &req, pageableFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) SearchByIngredients(c *gin.Context) {
	names := c.QueryArray("ingredient")
	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one ingredient parameter is required"})
		return
	}

	page, err := h.recipes.SearchByIngredients(c.Request.Context(), names, pageableFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) TopRated(c *gin.Context) {
	minRating := 4.0
	if raw := c.Query("min_rating"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			minRating = parsed
		}
	}

	page, err := h.recipes.TopRated(c.Request.Context(), minRating, pageableFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) MostPopular(c *gin.Context) {
	page, err := h.recipes.MostPopular(c.Request.Context(), pageableFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) Recent(c *gin.Context) {
	page, err := h.recipes.Recent(c.Request.Context(), pageableFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RecipeHandler) Statistics(c *gin.Context) {
	stats, err := h.recipes.Statistics(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
