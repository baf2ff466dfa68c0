package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fooddelight-backend-go/internal/models"
)

const contentCollection = "content"

// firestoreContentRepository implements the ContentRepository interface using Firestore.
type firestoreContentRepository struct {
	client *firestore.Client
}

// NewFirestoreContentRepository creates a new instance of firestoreContentRepository.
func NewFirestoreContentRepository(client *firestore.Client) ContentRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ContentRepository.")
	}
	return &firestoreContentRepository{client: client}
}

// Create adds a new content document with an auto-generated ID.
func (r *firestoreContentRepository) Create(ctx context.Context, content *models.Content) (string, error) {
	docRef := r.client.Collection(contentCollection).NewDoc()
	content.ID = docRef.ID
	if _, err := docRef.Create(ctx, content); err != nil {
		return "", fmt.Errorf("failed to create content: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a content document by its ID.
func (r *firestoreContentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	if id == "" {
		return nil, errors.New("id cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(contentCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("content with ID '%s' not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content with ID '%s': %w", id, err)
	}

	var content models.Content
	if err := docSnap.DataTo(&content); err != nil {
		return nil, fmt.Errorf("failed to decode content data for ID '%s': %w", id, err)
	}
	content.ID = docSnap.Ref.ID

	return &content, nil
}

// List retrieves all content documents, newest first.
func (r *firestoreContentRepository) List(ctx context.Context) ([]*models.Content, error) {
	iter := r.client.Collection(contentCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var items []*models.Content
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate content: %w", err)
		}
		var content models.Content
		if err := docSnap.DataTo(&content); err != nil {
			return nil, fmt.Errorf("failed to decode content '%s': %w", docSnap.Ref.ID, err)
		}
		content.ID = docSnap.Ref.ID
		items = append(items, &content)
	}
	return items, nil
}

// Update overwrites an existing content document with the given state.
func (r *firestoreContentRepository) Update(ctx context.Context, content *models.Content) error {
	if content.ID == "" {
		return errors.New("content ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(contentCollection).Doc(content.ID).Set(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to update content with ID '%s': %w", content.ID, err)
	}
	return nil
}

// Delete removes a content document by its ID.
func (r *firestoreContentRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(contentCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete content with ID '%s': %w", id, err)
	}
	return nil
}
