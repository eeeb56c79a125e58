package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-browser/internal/events"
	"github.com/spec-kit/movie-browser/internal/observability"
)

// RenewalPolicy slides cookie sessions forward after each successful request.
type RenewalPolicy struct {
	issuer     *SessionIssuer
	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
}

// NewRenewalPolicy builds the policy. metrics and dispatcher may be nil.
func NewRenewalPolicy(issuer *SessionIssuer, logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher) *RenewalPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenewalPolicy{issuer: issuer, logger: logger, metrics: metrics, dispatcher: dispatcher}
}

// Eligible reports whether the session may be renewed. Header sessions never are.
func (p *RenewalPolicy) Eligible(session *Session) bool {
	return session != nil && session.Channel == ChannelCookie && !session.Ended() && session.Subject.ID != ""
}

// Apply mints a replacement cookie for an eligible session. Failures are logged and
// swallowed so the already-produced response is never affected.
func (p *RenewalPolicy) Apply(c *fiber.Ctx, session *Session, previous Payload) bool {
	if !p.Eligible(session) {
		return false
	}

	issued, err := p.issuer.Issue(session.Subject, ChannelCookie)
	if err != nil {
		p.logger.Warn("session renewal failed",
			zap.String("subject", session.Subject.ID),
			zap.Error(err),
		)
		p.metrics.RecordSession("renewal_failed", string(ChannelCookie))
		p.publish(c.UserContext(), events.EventRenewalFailed, session, events.RenewalFailedPayload{Reason: err.Error()})
		return false
	}

	c.Cookie(p.issuer.SessionCookie(issued.Token))
	p.metrics.RecordSession("renewed", string(ChannelCookie))
	p.logger.Debug("session renewed",
		zap.String("subject", session.Subject.ID),
		zap.Bool("was_expired", session.RenewalRequired),
		zap.Time("expires_at", issued.ExpiresAt),
	)
	p.publish(c.UserContext(), events.EventSessionRenewed, session, events.SessionRenewedPayload{
		TokenID:        issued.Payload.TokenID,
		PreviousExpiry: previous.ExpiresAt,
		ExpiresAt:      issued.ExpiresAt,
		WasExpired:     session.RenewalRequired,
	})
	return true
}

func (p *RenewalPolicy) publish(ctx context.Context, eventType events.EventType, session *Session, payload interface{}) {
	if p.dispatcher == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   session.Subject,
		Channel:   string(session.Channel),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("session event handler failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}
