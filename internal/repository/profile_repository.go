package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/movie-browser/internal/domain"
)

// ProfileRepository reads viewing profiles.
type ProfileRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]domain.Profile, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Profile, error) {
	const query = `
        SELECT id, user_id, name, avatar_url
        FROM profiles WHERE user_id=$1
        ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.AvatarURL); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) GetByID(ctx context.Context, id, userID string) (*domain.Profile, error) {
	const query = `
        SELECT id, user_id, name, avatar_url
        FROM profiles WHERE id=$1 AND user_id=$2`

	var p domain.Profile
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.AvatarURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

type memoryProfileRepository struct {
	profiles []domain.Profile
}

// NewMemoryProfileRepository returns a read-only in-memory store.
func NewMemoryProfileRepository(profiles []domain.Profile) ProfileRepository {
	return &memoryProfileRepository{profiles: append([]domain.Profile(nil), profiles...)}
}

func (r *memoryProfileRepository) ListByUserID(_ context.Context, userID string) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0)
	for _, p := range r.profiles {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryProfileRepository) GetByID(_ context.Context, id, userID string) (*domain.Profile, error) {
	for _, p := range r.profiles {
		if p.ID == id && p.UserID == userID {
			profile := p
			return &profile, nil
		}
	}
	return nil, ErrNotFound
}
