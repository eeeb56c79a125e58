package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/movie-browser/pkg/util/errorutil"
)

// AuthMiddleware authenticates requests and renews cookie sessions on success.
type AuthMiddleware struct {
	extractor *Extractor
	gate      *Gate
	renewal   *RenewalPolicy
	logger    *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(extractor *Extractor, gate *Gate, renewal *RenewalPolicy, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{extractor: extractor, gate: gate, renewal: renewal, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	cred := m.extractor.Extract(c)
	decision := m.gate.Evaluate(cred)
	if !decision.Accepted() {
		m.logger.Debug("request rejected",
			zap.String("path", c.Path()),
			zap.String("channel", string(decision.Channel)),
			zap.Error(decision.Err),
		)
		return rejection(decision.Err)
	}

	session := &Session{
		Subject:         decision.Subject,
		Channel:         decision.Channel,
		Token:           cred.Token,
		RenewalRequired: decision.RenewalRequired(),
	}
	c.Locals(sessionKey, session)

	if err := c.Next(); err != nil {
		return err
	}
	if c.Response().StatusCode() >= fiber.StatusBadRequest {
		return nil
	}

	if m.renewal != nil {
		m.renewal.Apply(c, session, decision.Payload)
	}
	return nil
}

func rejection(err error) error {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperrors.NewTokenExpired()
	case errors.Is(err, ErrNoCredential):
		return apperrors.NewUnauthenticated("missing credentials")
	case errors.Is(err, ErrMissingSubject):
		return apperrors.NewUnauthenticated("invalid token payload")
	case errors.Is(err, ErrRenewalWindowExceeded):
		return apperrors.NewUnauthenticated("session expired")
	default:
		return apperrors.NewUnauthenticated("invalid token")
	}
}
