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

const contactsCollection = "contacts"

// firestoreContactRepository implements the ContactRepository interface using Firestore.
type firestoreContactRepository struct {
	client *firestore.Client
}

// NewFirestoreContactRepository creates a new instance of firestoreContactRepository.
func NewFirestoreContactRepository(client *firestore.Client) ContactRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ContactRepository.")
	}
	return &firestoreContactRepository{client: client}
}

// Create stores a new contact message with an auto-generated ID.
func (r *firestoreContactRepository) Create(ctx context.Context, msg *models.ContactMessage) (string, error) {
	docRef := r.client.Collection(contactsCollection).NewDoc()
	msg.ID = docRef.ID
	if _, err := docRef.Create(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to create contact message: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a contact message by its ID.
func (r *firestoreContactRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	if id == "" {
		return nil, errors.New("id cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(contactsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("contact message with ID '%s' not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact message with ID '%s': %w", id, err)
	}

	var msg models.ContactMessage
	if err := docSnap.DataTo(&msg); err != nil {
		return nil, fmt.Errorf("failed to decode contact message data for ID '%s': %w", id, err)
	}
	msg.ID = docSnap.Ref.ID

	return &msg, nil
}

// List retrieves all contact messages, newest first.
func (r *firestoreContactRepository) List(ctx context.Context) ([]*models.ContactMessage, error) {
	iter := r.client.Collection(contactsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var msgs []*models.ContactMessage
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate contact messages: %w", err)
		}
		var msg models.ContactMessage
		if err := docSnap.DataTo(&msg); err != nil {
			return nil, fmt.Errorf("failed to decode contact message '%s': %w", docSnap.Ref.ID, err)
		}
		msg.ID = docSnap.Ref.ID
		msgs = append(msgs, &msg)
	}
	return msgs, nil
}

// Update overwrites an existing contact message with the given state.
func (r *firestoreContactRepository) Update(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		return errors.New("contact message ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(contactsCollection).Doc(msg.ID).Set(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to update contact message with ID '%s': %w", msg.ID, err)
	}
	return nil
}

// Delete removes a contact message by its ID.
func (r *firestoreContactRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(contactsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete contact message with ID '%s': %w", id, err)
	}
	return nil
}
