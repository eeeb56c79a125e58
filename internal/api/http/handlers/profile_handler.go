package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-browser/internal/api/dto"
	"github.com/spec-kit/movie-browser/internal/auth"
	"github.com/spec-kit/movie-browser/internal/domain"
	"github.com/spec-kit/movie-browser/internal/service"
	apperrors "github.com/spec-kit/movie-browser/pkg/util/errorutil"
)

// ProfileHandler exposes the subject's viewing profiles.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// List handles GET /profile.
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	profiles, err := h.profiles.List(c.UserContext(), session.Subject.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.DataResponse[[]domain.Profile]{Data: profiles, Message: "Profiles fetched successfully"})
}

// Get handles GET /profile/:id.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	profile, err := h.profiles.Get(c.UserContext(), c.Params("id"), session.Subject.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.DataResponse[*domain.Profile]{Data: profile, Message: "Profile fetched successfully"})
}
