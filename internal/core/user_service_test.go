package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelight-backend-go/internal/models"
)

func TestGetOrCreateCreatesMissingProfile(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{}}
	svc := NewUserService(users)

	user, created, err := svc.GetOrCreate(context.Background(), "uid-1", "new@example.com", "New Admin")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "uid-1", user.ID)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "admin", user.Role)
	assert.Contains(t, users.users, "uid-1")
}

func TestGetOrCreateReturnsExistingProfile(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{
		"uid-1": {ID: "uid-1", Email: "old@example.com", DisplayName: "Old Admin"},
	}}
	svc := NewUserService(users)

	user, created, err := svc.GetOrCreate(context.Background(), "uid-1", "ignored@example.com", "Ignored")
	require.NoError(t, err)
	assert.False(t, created)
	// Existing profile wins over fresh token claims.
	assert.Equal(t, "old@example.com", user.Email)
}

func TestGetByIDUnknownUser(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{users: map[string]*models.User{}})

	_, err := svc.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
