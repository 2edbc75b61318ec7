package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/middleware"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/service"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/types"
)

// AuthHandler exposes registration, login, and token management endpoints.
type AuthHandler struct {
	auth *service.AuthService
	log  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log.With().Str("handler", "auth").Logger()}
}

// RegisterRoutes mounts the auth endpoints on the given group.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/validate", h.Validate)
		auth.GET("/check-username", h.CheckUsername)
		auth.GET("/check-email", h.CheckEmail)
		auth.GET("/me", middleware.RequireAuth(), h.Me)
		auth.POST("/change-password", middleware.RequireAuth(), h.ChangePassword)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req types.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	resp, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Validate reports token validity without distinguishing failure causes.
func (h *AuthHandler) Validate(c *gin.Context) {
	var req types.ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": h.auth.ValidateToken(c.Request.Context(), req.Token)})
}

func (h *AuthHandler) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username query parameter is required"})
		return
	}

	available, err := h.auth.IsUsernameAvailable(c.Request.Context(), username)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (h *AuthHandler) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	available, err := h.auth.IsEmailAvailable(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (h *AuthHandler) Me(c *gin.Context) {
	token, _ := bearerFromHeader(c)
	info, err := h.auth.UserInfoFromToken(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req types.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	identity, _ := middleware.CurrentIdentity(c)
	if err := h.auth.ChangePassword(c.Request.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}
