package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/models"
)

// ErrGalleryItemNotFound is returned when a gallery item is not found.
var ErrGalleryItemNotFound = errors.New("gallery item not found")

// galleryService implements the GalleryService interface.
type galleryService struct {
	galleryRepo db.GalleryRepository
}

// NewGalleryService creates a new GalleryService instance.
func NewGalleryService(galleryRepo db.GalleryRepository) GalleryService {
	return &galleryService{galleryRepo: galleryRepo}
}

// Create stores a new gallery item. imagePath is the already-saved upload path.
func (s *galleryService) Create(ctx context.Context, req models.CreateGalleryRequest, imagePath string) (*models.GalleryItem, error) {
	if !models.ValidGalleryCategory(req.Category) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidCategory, req.Category)
	}
	if imagePath == "" {
		return nil, ErrMissingImage
	}

	item := &models.GalleryItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       imagePath,
		Category:    req.Category,
		Price:       req.Price,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if _, err := s.galleryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create gallery item in repository: %w", err)
	}
	return item, nil
}

// List returns gallery items, newest first. activeOnly selects the public view.
func (s *galleryService) List(ctx context.Context, activeOnly bool) ([]*models.GalleryItem, error) {
	items, err := s.galleryRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery items from repository: %w", err)
	}
	return items, nil
}

// Update applies the provided fields to an existing gallery item.
func (s *galleryService) Update(ctx context.Context, id string, req models.UpdateGalleryRequest, imagePath string) (*models.GalleryItem, error) {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrGalleryItemNotFound, id)
		}
		return nil, fmt.Errorf("failed to get gallery item '%s' for update: %w", id, err)
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		if !models.ValidGalleryCategory(*req.Category) {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidCategory, *req.Category)
		}
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if imagePath != "" {
		item.Image = imagePath
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.galleryRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update gallery item '%s' in repository: %w", id, err)
	}
	return item, nil
}

// Delete removes a gallery item by ID and returns its last stored state.
func (s *galleryService) Delete(ctx context.Context, id string) (*models.GalleryItem, error) {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrGalleryItemNotFound, id)
		}
		return nil, fmt.Errorf("failed to get gallery item '%s' for delete: %w", id, err)
	}
	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete gallery item '%s' from repository: %w", id, err)
	}
	return item, nil
}
