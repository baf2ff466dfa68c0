package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/core"
)

// UserHandler handles user-profile related API endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// GetCurrentUserProfile handles GET /api/v1/users/me. It returns the profile
// of the currently authenticated user.
func (h *UserHandler) GetCurrentUserProfile(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User profile not found"})
			return
		}
		h.logger.Error("Failed to retrieve user profile",
			zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve user profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}
