package db

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"fooddelight-backend-go/internal/config"
)

var (
	// fsClient is the global Firestore client instance.
	fsClient *firestore.Client
	// fbAuthClient is the global Firebase Auth client instance.
	fbAuthClient *auth.Client
)

// InitFirestore initializes the Firebase Admin SDK and sets up the Firestore
// and Firebase Auth clients. Credentials come from the app config: a service
// account file path, a base64-encoded service account JSON blob, or
// Application Default Credentials when neither is set.
func InitFirestore(ctx context.Context, appConfig *config.Config) error {
	if appConfig == nil {
		return fmt.Errorf("InitFirestore: appConfig cannot be nil")
	}

	var credsOption option.ClientOption
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		if _, err := os.Stat(appConfig.GoogleApplicationCredentials); os.IsNotExist(err) {
			log.Printf("Warning: credentials file does not exist: %s", appConfig.GoogleApplicationCredentials)
		}
		credsOption = option.WithCredentialsFile(appConfig.GoogleApplicationCredentials)
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		decodedJSON, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return fmt.Errorf("failed to decode FirebaseServiceAccountJSONBase64: %w", err)
		}
		credsOption = option.WithCredentialsJSON(decodedJSON)
	default:
		log.Println("Initializing Firebase using Application Default Credentials (ADC).")
	}

	var firebaseAppConfig *firebase.Config
	if appConfig.FirebaseProjectID != "" {
		firebaseAppConfig = &firebase.Config{ProjectID: appConfig.FirebaseProjectID}
	}

	var app *firebase.App
	var err error
	if credsOption != nil {
		app, err = firebase.NewApp(ctx, firebaseAppConfig, credsOption)
	} else {
		app, err = firebase.NewApp(ctx, firebaseAppConfig)
	}
	if err != nil {
		return fmt.Errorf("firebase.NewApp: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("app.Firestore: %w", err)
	}
	fsClient = client

	authCl, err := app.Auth(ctx)
	if err != nil {
		fsClient.Close() // best effort
		return fmt.Errorf("app.Auth: %w", err)
	}
	fbAuthClient = authCl

	return nil
}

// GetFirestoreClient returns the global Firestore client. Callers should
// check for nil, which means InitFirestore was not called or failed.
func GetFirestoreClient() *firestore.Client {
	if fsClient == nil {
		log.Println("Warning: GetFirestoreClient called before InitFirestore or InitFirestore failed.")
	}
	return fsClient
}

// GetFirebaseAuthClient returns the global Firebase Auth client.
func GetFirebaseAuthClient() *auth.Client {
	if fbAuthClient == nil {
		log.Println("Warning: GetFirebaseAuthClient called before InitFirestore or InitFirestore failed.")
	}
	return fbAuthClient
}
