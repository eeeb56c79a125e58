package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-browser/internal/events"
)

// SessionAuditService writes an audit trail of session lifecycle events.
type SessionAuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSessionAuditService creates the service.
func NewSessionAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *SessionAuditService {
	return &SessionAuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("session_audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *SessionAuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionIssued, a.handle)
	a.dispatcher.Subscribe(events.EventSessionRenewed, a.handle)
	a.dispatcher.Subscribe(events.EventSessionCleared, a.handle)
	a.dispatcher.Subscribe(events.EventRenewalFailed, a.handleFailure)
}

func (a *SessionAuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("subject", event.Subject.ID),
		zap.String("channel", event.Channel),
		zap.Any("payload", event.Payload),
	)
	return nil
}

func (a *SessionAuditService) handleFailure(_ context.Context, event events.Event) error {
	a.logger.Warn(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("subject", event.Subject.ID),
		zap.Any("payload", event.Payload),
	)
	return nil
}
