package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-browser/internal/service"
)

// MoviesHandler proxies catalog listings.
type MoviesHandler struct {
	movies *service.MovieService
}

// NewMoviesHandler constructs handler.
func NewMoviesHandler(movies *service.MovieService) *MoviesHandler {
	return &MoviesHandler{movies: movies}
}

// Popular handles GET /movies/popular and returns the upstream body unchanged.
func (h *MoviesHandler) Popular(c *fiber.Ctx) error {
	page := c.QueryInt("page", service.DefaultMoviePage)
	language := c.Query("language", service.DefaultMovieLanguage)

	body, err := h.movies.PopularMovies(c.UserContext(), page, language)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
