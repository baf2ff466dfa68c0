package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fooddelight-backend-go/internal/models"
)

const (
	aboutCollection = "about"
	// aboutDocID is the fixed document ID: the about page is a singleton.
	aboutDocID = "main"
)

// firestoreAboutRepository implements the AboutRepository interface using
// Firestore. The about page lives in a single well-known document.
type firestoreAboutRepository struct {
	client *firestore.Client
}

// NewFirestoreAboutRepository creates a new instance of firestoreAboutRepository.
func NewFirestoreAboutRepository(client *firestore.Client) AboutRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AboutRepository.")
	}
	return &firestoreAboutRepository{client: client}
}

// Get retrieves the about-page document. Returns ErrNotFound (wrapped) when
// it has never been written.
func (r *firestoreAboutRepository) Get(ctx context.Context) (*models.About, error) {
	docSnap, err := r.client.Collection(aboutCollection).Doc(aboutDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("about page not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get about page: %w", err)
	}

	var about models.About
	if err := docSnap.DataTo(&about); err != nil {
		return nil, fmt.Errorf("failed to decode about page data: %w", err)
	}
	about.ID = docSnap.Ref.ID

	return &about, nil
}

// Upsert writes the about-page document, creating it if absent.
func (r *firestoreAboutRepository) Upsert(ctx context.Context, about *models.About) error {
	about.ID = aboutDocID
	_, err := r.client.Collection(aboutCollection).Doc(aboutDocID).Set(ctx, about)
	if err != nil {
		return fmt.Errorf("failed to upsert about page: %w", err)
	}
	return nil
}
