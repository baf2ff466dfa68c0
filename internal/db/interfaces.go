package db

import (
	"context"
	"time"

	"fooddelight-backend-go/internal/models"
)

// UserRepository defines the interface for user profile storage.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// ContentRepository defines the interface for site content storage.
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) (string, error)
	GetByID(ctx context.Context, id string) (*models.Content, error)
	List(ctx context.Context) ([]*models.Content, error)
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id string) error
}

// GalleryRepository defines the interface for gallery item storage.
type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) (string, error)
	GetByID(ctx context.Context, id string) (*models.GalleryItem, error)
	List(ctx context.Context, activeOnly bool) ([]*models.GalleryItem, error)
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id string) error
}

// ContactRepository defines the interface for contact message storage.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) (string, error)
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	List(ctx context.Context) ([]*models.ContactMessage, error)
	Update(ctx context.Context, msg *models.ContactMessage) error
	Delete(ctx context.Context, id string) error
}

// AboutRepository defines the interface for the single about-page document.
type AboutRepository interface {
	Get(ctx context.Context) (*models.About, error)
	Upsert(ctx context.Context, about *models.About) error
}

// HistoryRepository defines the interface for the append-only history
// collection. There is no update operation; records are immutable once
// written and only PurgeOlderThan removes them.
type HistoryRepository interface {
	Create(ctx context.Context, record *models.HistoryRecord) (string, error)
	List(ctx context.Context, filter models.HistoryFilter, limit, offset int) ([]*models.HistoryRecord, error)
	CountByAction(ctx context.Context) (map[models.ActionType]int, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
