package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/models"
)

// ErrAboutNotFound is returned when the about page has never been written.
var ErrAboutNotFound = errors.New("about page not found")

// aboutService implements the AboutService interface.
type aboutService struct {
	aboutRepo db.AboutRepository
}

// NewAboutService creates a new AboutService instance.
func NewAboutService(aboutRepo db.AboutRepository) AboutService {
	return &aboutService{aboutRepo: aboutRepo}
}

// Get returns the single about-page document.
func (s *aboutService) Get(ctx context.Context) (*models.About, error) {
	about, err := s.aboutRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrAboutNotFound
		}
		return nil, fmt.Errorf("failed to get about page: %w", err)
	}
	return about, nil
}

// Upsert writes the about-page document. Image paths absent from the incoming
// state are preserved from the stored document, so re-submitting the form
// without new uploads keeps the existing images.
func (s *aboutService) Upsert(ctx context.Context, about *models.About) (*models.About, error) {
	existing, err := s.aboutRepo.Get(ctx)
	if err != nil && !errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("failed to get about page for upsert: %w", err)
	}
	if existing != nil {
		if about.BannerBg == "" {
			about.BannerBg = existing.BannerBg
		}
		if len(about.StoryImages) == 0 {
			about.StoryImages = existing.StoryImages
		}
	}
	about.UpdatedAt = time.Now().UTC()

	if err := s.aboutRepo.Upsert(ctx, about); err != nil {
		return nil, fmt.Errorf("failed to upsert about page: %w", err)
	}
	return about, nil
}
