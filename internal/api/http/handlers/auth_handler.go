package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-browser/internal/api/dto"
	"github.com/spec-kit/movie-browser/internal/auth"
	"github.com/spec-kit/movie-browser/internal/service"
	apperrors "github.com/spec-kit/movie-browser/pkg/util/errorutil"
)

// KeepAliveHeader advertises how often web clients should ping, in seconds.
const KeepAliveHeader = "X-Keep-Alive-Interval"

// AuthHandler exposes login, logout, me and the keep-alive ping.
type AuthHandler struct {
	auth      *service.AuthService
	keepAlive time.Duration
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, keepAlive time.Duration) *AuthHandler {
	return &AuthHandler{auth: authService, keepAlive: keepAlive}
}

// Login handles POST /auth/login. Web clients get the token as a cookie only.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, err := dto.ParseLoginRequest(c.Body())
	if err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if problems := req.Validate(); len(problems) > 0 {
		return apperrors.NewValidationError("invalid login request", problems)
	}

	channel := auth.ChannelForClientType(c.Get(auth.ClientTypeHeader))
	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password, channel)
	if err != nil {
		return err
	}

	user := dto.NewUserResponse(result.Subject)
	if channel == auth.ChannelCookie {
		c.Cookie(h.auth.Issuer().SessionCookie(result.Issued.Token))
		h.advertiseKeepAlive(c)
		return c.JSON(dto.WebLoginResponse{User: user})
	}
	return c.JSON(dto.APILoginResponse{
		AccessToken: result.Issued.Token,
		User:        user,
		ExpiresAt:   result.Issued.ExpiresAt,
	})
}

// Logout handles POST /auth/logout by clearing the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	h.auth.Logout(c.UserContext(), session)
	c.Cookie(h.auth.Issuer().ClearedCookie())
	return c.JSON(dto.MessageResponse{Message: "Logout successful, JWT cookie cleared."})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	me, err := h.auth.Me(c.UserContext(), session.Subject)
	if err != nil {
		return err
	}
	return c.JSON(dto.DataResponse[dto.MeData]{
		Data: dto.MeData{
			User:     dto.NewUserResponse(me.User),
			Profiles: me.Profiles,
		},
		Message: "User data fetched successfully",
	})
}

// Ping handles GET /auth/ping. Its work is done by the auth middleware.
func (h *AuthHandler) Ping(c *fiber.Ctx) error {
	h.advertiseKeepAlive(c)
	return c.Status(http.StatusOK).JSON(dto.MessageResponse{Message: "Auth session active."})
}

func (h *AuthHandler) advertiseKeepAlive(c *fiber.Ctx) {
	if h.keepAlive > 0 {
		c.Set(KeepAliveHeader, strconv.Itoa(int(h.keepAlive/time.Second)))
	}
}
