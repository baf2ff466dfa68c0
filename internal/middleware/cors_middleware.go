package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fooddelight-backend-go/internal/config"
)

// CORSMiddleware configures CORS for the admin dashboard and public site.
// Requests are allowed from the CLIENT_URL configured for the deployment.
func CORSMiddleware(appConfig *config.Config) gin.HandlerFunc {
	if appConfig == nil || appConfig.ClientURL == "" {
		panic("ClientURL for CORS is not configured")
	}

	return cors.New(cors.Config{
		AllowOrigins:     []string{appConfig.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
