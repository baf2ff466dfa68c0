package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fooddelight-backend-go/internal/api"
	"fooddelight-backend-go/internal/config"
	"fooddelight-backend-go/internal/core"
	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/mail"
	"fooddelight-backend-go/internal/middleware"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// Uploaded images live on local disk; make sure the directory exists
	// before the first multipart save.
	if err := os.MkdirAll(appConfig.UploadDir, 0o755); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to create upload directory",
			zap.String("dir", appConfig.UploadDir), zap.Error(err))
	}

	// --- 3. Initialize Firebase Admin SDK (Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	if firestoreClient == nil || firebaseAuthClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase clients are nil after initialization. Application cannot start.")
	}

	// --- 4. Initialize Repositories ---
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	contentRepo := db.NewFirestoreContentRepository(firestoreClient)
	galleryRepo := db.NewFirestoreGalleryRepository(firestoreClient)
	contactRepo := db.NewFirestoreContactRepository(firestoreClient)
	aboutRepo := db.NewFirestoreAboutRepository(firestoreClient)
	historyRepo := db.NewFirestoreHistoryRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 5. Initialize Core Services ---
	var mailer core.Mailer
	if appConfig.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     appConfig.SMTPHost,
			Port:     appConfig.SMTPPort,
			Username: appConfig.SMTPUsername,
			Password: appConfig.SMTPPassword,
			From:     appConfig.SMTPFrom,
		}, zapLogger)
		zapLogger.Info("SMTP mailer enabled", zap.String("host", appConfig.SMTPHost))
	} else {
		zapLogger.Warn("SMTP_HOST not configured; contact emails are disabled.")
	}

	userService := core.NewUserService(userRepo)
	contentService := core.NewContentService(contentRepo)
	galleryService := core.NewGalleryService(galleryRepo)
	contactService := core.NewContactService(contactRepo, mailer, appConfig.ContactInbox, zapLogger)
	aboutService := core.NewAboutService(aboutRepo)
	historyService := core.NewHistoryService(historyRepo, userRepo)
	zapLogger.Info("Core services initialized successfully.")

	// --- 6. Start the History Recorder ---
	recorder := middleware.NewHistoryRecorder(historyService, zapLogger, appConfig.HistoryQueueSize)

	// --- 7. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 8. Apply Global Middleware (order matters) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig))

	// --- 9. Setup API Routes ---
	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		recorder,
		userService,
		contentService,
		galleryService,
		contactService,
		aboutService,
		historyService,
	)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	// Drain queued history writes after the server stops taking requests, so
	// records for completed responses are not lost on exit.
	recorder.Close()

	if err := firestoreClient.Close(); err != nil {
		zapLogger.Warn("Failed to close Firestore client", zap.Error(err))
	}
	zapLogger.Info("Server exiting gracefully.")
}
