package models

import "time"

// Gallery categories are the menu sections shown on the public site.
const (
	GalleryCategoryAppetizer  = "appetizer"
	GalleryCategoryMainCourse = "main-course"
	GalleryCategoryDessert    = "dessert"
	GalleryCategoryBeverage   = "beverage"
)

// ValidGalleryCategory reports whether c is one of the known menu sections.
func ValidGalleryCategory(c string) bool {
	switch c {
	case GalleryCategoryAppetizer, GalleryCategoryMainCourse,
		GalleryCategoryDessert, GalleryCategoryBeverage:
		return true
	}
	return false
}

// GalleryItem is a dish shown in the public gallery. Price is optional
// (0 means "not priced").
type GalleryItem struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Image       string    `json:"image" firestore:"image"`
	Category    string    `json:"category" firestore:"category"`
	Price       float64   `json:"price,omitempty" firestore:"price,omitempty"`
	IsActive    bool      `json:"isActive" firestore:"isActive"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}
