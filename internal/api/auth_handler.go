package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/core"
	"fooddelight-backend-go/internal/models"
)

// AuthHandler handles authentication related API endpoints.
type AuthHandler struct {
	userService    core.UserService
	historyService core.HistoryService
	logger         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us core.UserService, hs core.HistoryService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: us, historyService: hs, logger: logger}
}

// InitializeUserProfile handles POST /api/v1/users/initialize. Clients call it
// after a Firebase authentication event so a profile document exists for the
// authenticated UID. It logs USER_REGISTER on first creation and USER_LOGIN
// otherwise; either history write is best-effort and never fails the request.
func (h *AuthHandler) InitializeUserProfile(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}
	email := c.GetString("userEmail")
	displayName := c.GetString("userDisplayName")

	user, created, err := h.userService.GetOrCreate(c.Request.Context(), userID, email, displayName)
	if err != nil {
		h.logger.Error("Failed to initialize user profile",
			zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to initialize user profile"})
		return
	}

	actionType := models.ActionUserLogin
	description := "User logged in: " + user.Email
	if created {
		actionType = models.ActionUserRegister
		description = "New user registered: " + user.Email
	}
	if _, err := h.historyService.Add(c.Request.Context(), actionType, description, nil, userID, c.ClientIP()); err != nil {
		h.logger.Warn("Failed to record auth history entry",
			zap.String("userID", userID), zap.Error(err))
	}

	if created {
		c.JSON(http.StatusCreated, user)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout handles POST /api/v1/users/logout. Token invalidation is the
// client's job (Firebase session), so the only server-side effect is the
// history entry.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	description := "User logged out"
	if email := c.GetString("userEmail"); email != "" {
		description = "User logged out: " + email
	}
	if _, err := h.historyService.Add(c.Request.Context(), models.ActionUserLogout, description, nil, userID, c.ClientIP()); err != nil {
		h.logger.Warn("Failed to record logout history entry",
			zap.String("userID", userID), zap.Error(err))
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}
