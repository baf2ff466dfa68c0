package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is a local definition for sending standardized error
// messages. It mirrors the one in internal/api to avoid an import cycle.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware provides Gin middleware for Firebase token authentication.
// The verified identity it attaches to the context is the actor the history
// recorder attributes actions to.
type AuthMiddleware struct {
	firebaseAuthClient *auth.Client
	logger             *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware instance. A nil auth client
// is a setup error; authenticated routes cannot work without one.
func NewAuthMiddleware(fbAuthClient *auth.Client, logger *zap.Logger) *AuthMiddleware {
	if fbAuthClient == nil {
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	return &AuthMiddleware{firebaseAuthClient: fbAuthClient, logger: logger}
}

// VerifyToken verifies the Firebase ID token from the Authorization header
// and, when valid, sets userID, userEmail and userDisplayName in the gin
// context for downstream handlers.
func (m *AuthMiddleware) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := m.firebaseAuthClient.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			// Generic message to the client; details stay server-side.
			m.logger.Warn("Failed to verify Firebase ID token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		c.Set("userID", token.UID)
		if email, ok := token.Claims["email"].(string); ok {
			c.Set("userEmail", email)
		}
		if name, ok := token.Claims["name"].(string); ok {
			c.Set("userDisplayName", name)
		}

		c.Next()
	}
}
