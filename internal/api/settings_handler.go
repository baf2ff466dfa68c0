package api

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/middleware"
	"fooddelight-backend-go/internal/models"
)

// SettingsHandler updates the admin account's Firebase credentials.
type SettingsHandler struct {
	authClient *auth.Client
	logger     *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(authClient *auth.Client, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{authClient: authClient, logger: logger}
}

// Get handles GET /api/v1/settings (admin). It returns the account details
// the settings form edits.
func (h *SettingsHandler) Get(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	user, err := h.authClient.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch admin account",
			zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email, "displayName": user.DisplayName})
}

// Update handles PUT /api/v1/settings (admin). It changes the authenticated
// account's email and/or password in Firebase Auth. At least one field must
// be provided.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req models.UpdateAdminSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: err.Error()})
		return
	}
	if req.NewEmail == "" && req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Provide newEmail and/or newPassword"})
		return
	}
	if req.NewPassword != "" && len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Password must be at least 6 characters"})
		return
	}

	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication error: User ID not found in context"})
		return
	}

	params := &auth.UserToUpdate{}
	var changed []string
	if req.NewEmail != "" {
		params = params.Email(req.NewEmail)
		changed = append(changed, "email")
	}
	if req.NewPassword != "" {
		params = params.Password(req.NewPassword)
		changed = append(changed, "password")
	}

	if _, err := h.authClient.UpdateUser(c.Request.Context(), userID, params); err != nil {
		h.logger.Error("Failed to update admin credentials",
			zap.String("userID", userID), zap.Strings("fields", changed), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update settings"})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Settings updated: " + strings.Join(changed, ", ")})
}

// DescribeSettingsUpdate summarizes which credentials changed, without ever
// echoing the new values.
func DescribeSettingsUpdate(req *middleware.RequestInfo, _ []byte) (string, error) {
	var changed []string
	if v, ok := req.Body["newEmail"].(string); ok && v != "" {
		changed = append(changed, "email")
	}
	if v, ok := req.Body["newPassword"].(string); ok && v != "" {
		changed = append(changed, "password")
	}
	if len(changed) == 0 {
		return "Admin settings updated", nil
	}
	return "Admin settings updated: " + strings.Join(changed, ", "), nil
}
