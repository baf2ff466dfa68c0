package core

import (
	"context"
	"time"

	"fooddelight-backend-go/internal/models"
)

// UserService defines the interface for user-profile operations.
type UserService interface {
	// GetOrCreate retrieves a user by ID. If the user doesn't exist, it creates
	// a new profile with the claims from the verified token. The boolean is
	// true when the profile was created on this call.
	GetOrCreate(ctx context.Context, userID, email, displayName string) (*models.User, bool, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// ContentService defines the interface for site content operations.
type ContentService interface {
	Create(ctx context.Context, req models.CreateContentRequest, imagePath string) (*models.Content, error)
	List(ctx context.Context) ([]*models.Content, error)
	Update(ctx context.Context, id string, req models.UpdateContentRequest, imagePath string) (*models.Content, error)
	// Delete removes the content block and returns its last stored state so
	// callers (and the history trail) can name what was removed.
	Delete(ctx context.Context, id string) (*models.Content, error)
}

// GalleryService defines the interface for gallery operations.
type GalleryService interface {
	Create(ctx context.Context, req models.CreateGalleryRequest, imagePath string) (*models.GalleryItem, error)
	List(ctx context.Context, activeOnly bool) ([]*models.GalleryItem, error)
	Update(ctx context.Context, id string, req models.UpdateGalleryRequest, imagePath string) (*models.GalleryItem, error)
	// Delete removes the gallery item and returns its last stored state.
	Delete(ctx context.Context, id string) (*models.GalleryItem, error)
}

// ContactService defines the interface for contact-form operations. Submit and
// Reply send email through the configured Mailer; mail failures never fail the
// stored message.
type ContactService interface {
	Submit(ctx context.Context, req models.CreateContactRequest) (*models.ContactMessage, error)
	List(ctx context.Context) ([]*models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (*models.ContactMessage, error)
	Reply(ctx context.Context, id string, message string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

// AboutService defines the interface for the single about-page document.
type AboutService interface {
	Get(ctx context.Context) (*models.About, error)
	Upsert(ctx context.Context, about *models.About) (*models.About, error)
}

// HistoryService defines the interface for the activity-history subsystem:
// the write primitive used by the recorder middleware and by routes without a
// natural response hook, plus the admin-facing query surface.
type HistoryService interface {
	// Add appends one history record. It validates that actionType and
	// description are present (ErrValidation) but is deliberately permissive
	// about tags outside the known set; the manual-entry endpoint applies
	// that stricter check itself.
	Add(ctx context.Context, actionType models.ActionType, description string, data map[string]interface{}, userID, ipAddress string) (*models.HistoryRecord, error)
	// List returns records newest first with actor names resolved.
	List(ctx context.Context, filter models.HistoryFilter, limit, offset int) ([]*models.HistoryEntry, error)
	Stats(ctx context.Context) (*models.HistoryStats, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// Mailer defines the interface for outbound email. Implementations must be
// safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
