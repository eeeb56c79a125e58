package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/movie-browser/internal/domain"
	"github.com/spec-kit/movie-browser/internal/repository"
	apperrors "github.com/spec-kit/movie-browser/pkg/util/errorutil"
)

// ProfileService serves read-only profile lookups.
type ProfileService struct {
	profiles repository.ProfileRepository
}

// NewProfileService builds the service.
func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// List returns every profile owned by the user.
func (s *ProfileService) List(ctx context.Context, userID string) ([]domain.Profile, error) {
	profiles, err := s.profiles.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return profiles, nil
}

// Get returns one profile, only if the user owns it.
func (s *ProfileService) Get(ctx context.Context, profileID, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, profileID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound(fmt.Sprintf("profile %q", profileID), nil)
		}
		return nil, apperrors.NewInternalError(err)
	}
	return profile, nil
}
