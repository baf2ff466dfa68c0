package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelight-backend-go/internal/db"
	"fooddelight-backend-go/internal/models"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetOrCreate retrieves a user by ID. If the user doesn't exist, a profile is
// created from the verified token claims. The boolean is true when the
// profile was created on this call.
func (s *userService) GetOrCreate(ctx context.Context, userID, email, displayName string) (*models.User, bool, error) {
	if s.userRepo == nil {
		return nil, false, errors.New("UserRepository not initialized in UserService")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			newUser := &models.User{
				ID:          userID, // Firebase Auth UID is the document ID
				Email:       email,
				DisplayName: displayName,
				Role:        "admin",
				CreatedAt:   time.Now().UTC(),
				UpdatedAt:   time.Now().UTC(),
			}
			if createErr := s.userRepo.Create(ctx, newUser); createErr != nil {
				return nil, false, fmt.Errorf("failed to create user (id: %s) after not found: %w", userID, createErr)
			}
			return newUser, true, nil
		}
		return nil, false, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}

	if user == nil {
		return nil, false, fmt.Errorf("repository returned no user and no error for ID '%s'", userID)
	}
	return user, false, nil
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if s.userRepo == nil {
		return nil, errors.New("UserRepository not initialized in UserService")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, nil
}
