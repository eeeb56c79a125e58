package service

import (
	"context"
	"encoding/json"

	"github.com/spec-kit/movie-browser/internal/catalog"
	apperrors "github.com/spec-kit/movie-browser/pkg/util/errorutil"
)

const (
	DefaultMoviePage     = 1
	DefaultMovieLanguage = "en-US"
)

// MovieService proxies catalog queries.
type MovieService struct {
	catalog catalog.Client
}

// NewMovieService builds the service.
func NewMovieService(client catalog.Client) *MovieService {
	return &MovieService{catalog: client}
}

// PopularMovies returns the upstream listing verbatim.
func (s *MovieService) PopularMovies(ctx context.Context, page int, language string) (json.RawMessage, error) {
	if page < 1 {
		page = DefaultMoviePage
	}
	if language == "" {
		language = DefaultMovieLanguage
	}
	body, err := s.catalog.PopularMovies(ctx, page, language)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable(err)
	}
	return body, nil
}
