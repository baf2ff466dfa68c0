package models

import "time"

// Content categories understood by the public site layout.
const (
	ContentCategoryBanner  = "banner"
	ContentCategoryAbout   = "about"
	ContentCategorySpecial = "special"
)

// ValidContentCategory reports whether c is one of the known categories.
func ValidContentCategory(c string) bool {
	switch c {
	case ContentCategoryBanner, ContentCategoryAbout, ContentCategorySpecial:
		return true
	}
	return false
}

// Content is a block of editable site content (banner, about blurb, special).
type Content struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Image       string    `json:"image" firestore:"image"` // served under /uploads
	Category    string    `json:"category" firestore:"category"`
	IsActive    bool      `json:"isActive" firestore:"isActive"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}
