package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roomshare/roomshare/internal/dto"
	"github.com/roomshare/roomshare/internal/model"
	"github.com/roomshare/roomshare/internal/repository"
	"github.com/roomshare/roomshare/pkg/apperror"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profiles := NewProfileService(repository.NewUserRepository(env.db))

	user := createTestUser(t, env.db, model.RoleStudent, "me@example.com")

	got, err := profiles.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)
	require.Empty(t, got.PasswordHash)
}

func TestGetProfile_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profiles := NewProfileService(repository.NewUserRepository(env.db))

	_, err := profiles.Get(ctx, uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	profiles := NewProfileService(repository.NewUserRepository(env.db))

	user := createTestUser(t, env.db, model.RoleStudent, "update@example.com")

	updated, err := profiles.Update(ctx, user.ID, dto.UpdateProfileRequest{
		FirstName:   "Mila",
		LastName:    "Milic",
		Track:       model.TrackKOT,
		IndexNumber: "2024/0007",
	})
	require.NoError(t, err)
	require.Equal(t, "Mila", updated.FirstName)
	require.Equal(t, model.TrackKOT, updated.Track)

	// Email and role never change through profile updates.
	var stored model.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	require.Equal(t, "update@example.com", stored.Email)
	require.Equal(t, model.RoleStudent, stored.Role)
	require.Equal(t, "2024/0007", stored.IndexNumber)
}
