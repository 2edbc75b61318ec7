package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomaspeirotti/gastro-genius-ai/internal/middleware"
)

// RegisterAdminRoutes mounts the account administration endpoints. Both
// moderators and admins may toggle accounts.
func (h *AuthHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.PUT("/users/:id/enable", h.EnableUser)
		admin.PUT("/users/:id/disable", h.DisableUser)
	}
}

func (h *AuthHandler) EnableUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.auth.EnableUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user enabled"})
}

func (h *AuthHandler) DisableUser(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.auth.DisableUser(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user disabled"})
}
