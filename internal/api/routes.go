package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/config"
	"fooddelight-backend-go/internal/core"
	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/middleware"
	"fooddelight-backend-go/internal/models"
)

// SetupRoutes configures all application routes with their handlers and
// middleware. Global middleware (logging, recovery, CORS) is applied to the
// router before this is called, in main.go. The recorder is attached per
// route so each action carries its own tag and description; it never wraps
// the whole router.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	recorder *middleware.HistoryRecorder,
	userService core.UserService,
	contentService core.ContentService,
	galleryService core.GalleryService,
	contactService core.ContactService,
	aboutService core.AboutService,
	historyService core.HistoryService,
) {
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firebaseAuthClient == nil {
		logger.Fatal("Firebase Auth client is not initialized; routes cannot be secured")
	}
	authMW := middleware.NewAuthMiddleware(firebaseAuthClient, logger)

	authHandler := NewAuthHandler(userService, historyService, logger)
	userHandler := NewUserHandler(userService, logger)
	contentHandler := NewContentHandler(contentService, appConfig.UploadDir, logger)
	galleryHandler := NewGalleryHandler(galleryService, appConfig.UploadDir, logger)
	contactHandler := NewContactHandler(contactService, logger)
	aboutHandler := NewAboutHandler(aboutService, appConfig.UploadDir, logger)
	historyHandler := NewHistoryHandler(historyService, appConfig.HistoryRetentionDays, logger)
	settingsHandler := NewSettingsHandler(firebaseAuthClient, logger)

	apiV1 := router.Group("/api/v1")
	{
		users := apiV1.Group("/users")
		{
			users.POST("/initialize", authMW.VerifyToken(), authHandler.InitializeUserProfile)
			users.POST("/logout", authMW.VerifyToken(), authHandler.Logout)
			users.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
		}

		content := apiV1.Group("/content")
		{
			content.GET("",
				recorder.Record(models.ActionViewContent, middleware.Describe("Content list viewed")),
				contentHandler.List)
			content.POST("", authMW.VerifyToken(),
				recorder.Record(models.ActionCreateContent, DescribeContentCreate),
				contentHandler.Create)
			content.PUT("/:id", authMW.VerifyToken(),
				recorder.Record(models.ActionUpdateContent, DescribeContentUpdate),
				contentHandler.Update)
			content.DELETE("/:id", authMW.VerifyToken(),
				recorder.Record(models.ActionDeleteContent, DescribeContentDelete),
				contentHandler.Delete)
		}

		gallery := apiV1.Group("/gallery")
		{
			gallery.GET("",
				recorder.Record(models.ActionViewGallery, middleware.Describe("Gallery viewed")),
				galleryHandler.List)
			gallery.GET("/all", authMW.VerifyToken(),
				recorder.Record(models.ActionViewGalleryAdmin, middleware.Describe("Admin gallery list viewed")),
				galleryHandler.ListAdmin)
			gallery.POST("", authMW.VerifyToken(),
				recorder.Record(models.ActionCreateGallery, DescribeGalleryCreate),
				galleryHandler.Create)
			gallery.PUT("/:id", authMW.VerifyToken(),
				recorder.Record(models.ActionUpdateGallery, DescribeGalleryUpdate),
				galleryHandler.Update)
			gallery.DELETE("/:id", authMW.VerifyToken(),
				recorder.Record(models.ActionDeleteGallery, DescribeGalleryDelete),
				galleryHandler.Delete)
		}

		contact := apiV1.Group("/contact")
		{
			contact.POST("",
				recorder.Record(models.ActionCreateContact, DescribeContactSubmit),
				contactHandler.Submit)
			contact.GET("", authMW.VerifyToken(),
				recorder.Record(models.ActionViewContact, middleware.Describe("Contact inbox viewed")),
				contactHandler.List)
			contact.PUT("/:id/read", authMW.VerifyToken(),
				recorder.Record(models.ActionUpdateContact, DescribeContactMarkRead),
				contactHandler.MarkRead)
			contact.POST("/:id/reply", authMW.VerifyToken(),
				recorder.Record(models.ActionUpdateContact, DescribeContactReply),
				contactHandler.Reply)
			contact.DELETE("/:id", authMW.VerifyToken(),
				recorder.Record(models.ActionDeleteContact, DescribeContactDelete),
				contactHandler.Delete)
		}

		about := apiV1.Group("/about")
		{
			about.GET("", aboutHandler.Get)
			about.PUT("", authMW.VerifyToken(),
				recorder.Record(models.ActionUpdateAbout, DescribeAboutUpdate),
				aboutHandler.Upsert)
		}

		settings := apiV1.Group("/settings", authMW.VerifyToken())
		{
			settings.GET("",
				recorder.Record(models.ActionViewAdminSettings, middleware.Describe("Admin settings viewed")),
				settingsHandler.Get)
			settings.PUT("",
				recorder.Record(models.ActionUpdateAdminSettings, DescribeSettingsUpdate),
				settingsHandler.Update)
		}

		history := apiV1.Group("/history", authMW.VerifyToken())
		{
			history.GET("", historyHandler.List)
			history.GET("/recent", historyHandler.Recent)
			history.GET("/date-range", historyHandler.DateRange)
			history.GET("/by-action/:actionType", historyHandler.ByAction)
			history.GET("/stats", historyHandler.Stats)
			history.POST("", historyHandler.Create)
			history.DELETE("/purge", historyHandler.Purge)
		}
	}

	// Uploaded images are served straight from disk.
	router.Static("/uploads", appConfig.UploadDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "FoodDelight backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}
