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

const galleryCollection = "gallery"

// firestoreGalleryRepository implements the GalleryRepository interface using Firestore.
type firestoreGalleryRepository struct {
	client *firestore.Client
}

// NewFirestoreGalleryRepository creates a new instance of firestoreGalleryRepository.
func NewFirestoreGalleryRepository(client *firestore.Client) GalleryRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for GalleryRepository.")
	}
	return &firestoreGalleryRepository{client: client}
}

// Create adds a new gallery item with an auto-generated ID.
func (r *firestoreGalleryRepository) Create(ctx context.Context, item *models.GalleryItem) (string, error) {
	docRef := r.client.Collection(galleryCollection).NewDoc()
	item.ID = docRef.ID
	if _, err := docRef.Create(ctx, item); err != nil {
		return "", fmt.Errorf("failed to create gallery item: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a gallery item by its ID.
func (r *firestoreGalleryRepository) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	if id == "" {
		return nil, errors.New("id cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(galleryCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("gallery item with ID '%s' not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get gallery item with ID '%s': %w", id, err)
	}

	var item models.GalleryItem
	if err := docSnap.DataTo(&item); err != nil {
		return nil, fmt.Errorf("failed to decode gallery item data for ID '%s': %w", id, err)
	}
	item.ID = docSnap.Ref.ID

	return &item, nil
}

// List retrieves gallery items, newest first. When activeOnly is set, only
// items currently flagged active are returned (the public listing).
func (r *firestoreGalleryRepository) List(ctx context.Context, activeOnly bool) ([]*models.GalleryItem, error) {
	query := r.client.Collection(galleryCollection).Query
	if activeOnly {
		query = query.Where("isActive", "==", true)
	}
	iter := query.OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var items []*models.GalleryItem
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate gallery items: %w", err)
		}
		var item models.GalleryItem
		if err := docSnap.DataTo(&item); err != nil {
			return nil, fmt.Errorf("failed to decode gallery item '%s': %w", docSnap.Ref.ID, err)
		}
		item.ID = docSnap.Ref.ID
		items = append(items, &item)
	}
	return items, nil
}

// Update overwrites an existing gallery item with the given state.
func (r *firestoreGalleryRepository) Update(ctx context.Context, item *models.GalleryItem) error {
	if item.ID == "" {
		return errors.New("gallery item ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(galleryCollection).Doc(item.ID).Set(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to update gallery item with ID '%s': %w", item.ID, err)
	}
	return nil
}

// Delete removes a gallery item by its ID.
func (r *firestoreGalleryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(galleryCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item with ID '%s': %w", id, err)
	}
	return nil
}
