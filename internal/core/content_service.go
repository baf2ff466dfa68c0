package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/models"
)

// Custom errors for the ContentService.
var (
	ErrContentNotFound = errors.New("content not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrMissingImage    = errors.New("an image is required")
)

// contentService implements the ContentService interface.
type contentService struct {
	contentRepo db.ContentRepository
}

// NewContentService creates a new ContentService instance.
func NewContentService(contentRepo db.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

// Create stores a new content block. imagePath is the already-saved upload
// path (e.g. "/uploads/abc.jpg"); uploads are the handler's concern.
func (s *contentService) Create(ctx context.Context, req models.CreateContentRequest, imagePath string) (*models.Content, error) {
	if !models.ValidContentCategory(req.Category) {
		return nil, fmt.Errorf("%w: '%s'", ErrInvalidCategory, req.Category)
	}
	if imagePath == "" {
		return nil, ErrMissingImage
	}

	content := &models.Content{
		Title:       req.Title,
		Description: req.Description,
		Image:       imagePath,
		Category:    req.Category,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if _, err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to create content in repository: %w", err)
	}
	return content, nil
}

// List returns all content blocks, newest first.
func (s *contentService) List(ctx context.Context) ([]*models.Content, error) {
	items, err := s.contentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content from repository: %w", err)
	}
	return items, nil
}

// Update applies the provided fields to an existing content block. A new
// imagePath, when non-empty, replaces the stored image.
func (s *contentService) Update(ctx context.Context, id string, req models.UpdateContentRequest, imagePath string) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrContentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get content '%s' for update: %w", id, err)
	}

	if req.Title != nil {
		content.Title = *req.Title
	}
	if req.Description != nil {
		content.Description = *req.Description
	}
	if req.Category != nil {
		if !models.ValidContentCategory(*req.Category) {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidCategory, *req.Category)
		}
		content.Category = *req.Category
	}
	if req.IsActive != nil {
		content.IsActive = *req.IsActive
	}
	if imagePath != "" {
		content.Image = imagePath
	}
	content.UpdatedAt = time.Now().UTC()

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to update content '%s' in repository: %w", id, err)
	}
	return content, nil
}

// Delete removes a content block by ID and returns its last stored state.
func (s *contentService) Delete(ctx context.Context, id string) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID '%s'", ErrContentNotFound, id)
		}
		return nil, fmt.Errorf("failed to get content '%s' for delete: %w", id, err)
	}
	if err := s.contentRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete content '%s' from repository: %w", id, err)
	}
	return content, nil
}
