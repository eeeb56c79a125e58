package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-browser/internal/domain"
)

const sessionKey = "auth_session"

// Session is the per-request authentication state. It lives in fiber locals and
// is discarded with the request.
type Session struct {
	Subject         domain.Subject
	Channel         Channel
	Token           string
	RenewalRequired bool

	ended bool
}

// End marks the session as terminated so no renewal is written for this request.
func (s *Session) End() {
	s.ended = true
}

// Ended reports whether End was called.
func (s *Session) Ended() bool {
	return s.ended
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*Session)
	return session, ok
}

// RequireSession rejects requests that reached a route without an authenticated session.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}
