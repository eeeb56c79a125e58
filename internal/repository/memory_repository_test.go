package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-browser/internal/repository"
)

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository(repository.SeedUsers("hash"))

	user, err := repo.GetByEmail(ctx, "User@Example.com")
	require.NoError(t, err)
	require.Equal(t, "user1", user.ID)
	require.Equal(t, "hash", user.PasswordHash)

	user, err = repo.GetByID(ctx, "user2")
	require.NoError(t, err)
	require.Equal(t, "user2@example.com", user.Email)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, "user3")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryUserRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository(repository.SeedUsers("hash"))

	user, err := repo.GetByID(ctx, "user1")
	require.NoError(t, err)
	user.Email = "changed@example.com"

	again, err := repo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", again.Email)
}

func TestMemoryProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryProfileRepository(repository.SeedProfiles())

	profiles, err := repo.ListByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	profiles, err = repo.ListByUserID(ctx, "user2")
	require.NoError(t, err)
	require.Len(t, profiles, 4)

	profiles, err = repo.ListByUserID(ctx, "nobody")
	require.NoError(t, err)
	require.NotNil(t, profiles)
	require.Empty(t, profiles)

	profile, err := repo.GetByID(ctx, "p2", "user1")
	require.NoError(t, err)
	require.Equal(t, "B", profile.Name)

	_, err = repo.GetByID(ctx, "p4", "user1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
