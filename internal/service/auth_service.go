package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/movie-browser/internal/auth"
	"github.com/spec-kit/movie-browser/internal/domain"
	"github.com/spec-kit/movie-browser/internal/events"
	"github.com/spec-kit/movie-browser/internal/observability"
	"github.com/spec-kit/movie-browser/internal/repository"
	apperrors "github.com/spec-kit/movie-browser/pkg/util/errorutil"
)

// AuthService coordinates login, logout and the current-user view.
type AuthService struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	issuer     *auth.SessionIssuer
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
	Issuer      *auth.SessionIssuer
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Subject domain.Subject
	Issued  auth.IssuedToken
}

// MeResult is the authenticated user together with their profiles.
type MeResult struct {
	User     domain.Subject
	Profiles []domain.Profile
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		profiles:   deps.ProfileRepo,
		issuer:     deps.Issuer,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}
}

// ValidateCredentials checks an email/password pair against the credential store and
// returns the sanitized subject. Unknown emails and wrong passwords fail identically.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (domain.Subject, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Subject{}, apperrors.NewInvalidCredentials()
		}
		return domain.Subject{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("stored password hash unusable", zap.String("user_id", user.ID), zap.Error(err))
		}
		return domain.Subject{}, apperrors.NewInvalidCredentials()
	}
	return user.Subject(), nil
}

// Login validates credentials and issues a token under the channel's policy.
func (s *AuthService) Login(ctx context.Context, email, password string, channel auth.Channel) (*LoginResult, error) {
	subject, err := s.ValidateCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	issued, err := s.issuer.Issue(subject, channel)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.metrics.RecordSession("issued", string(channel))
	s.publish(ctx, events.EventSessionIssued, subject, channel, events.SessionIssuedPayload{
		TokenID:   issued.Payload.TokenID,
		ExpiresAt: issued.ExpiresAt,
	})
	return &LoginResult{Subject: subject, Issued: issued}, nil
}

// Logout ends the request's session. There is no server-side state to invalidate; a
// captured token stays valid until its own expiry.
func (s *AuthService) Logout(ctx context.Context, session *auth.Session) {
	if session == nil {
		return
	}
	session.End()
	s.metrics.RecordSession("cleared", string(session.Channel))
	s.publish(ctx, events.EventSessionCleared, session.Subject, session.Channel, nil)
}

// Me returns the subject and profiles. A subject no longer in the store is
// treated as unauthenticated.
func (s *AuthService) Me(ctx context.Context, subject domain.Subject) (*MeResult, error) {
	user, err := s.users.GetByID(ctx, subject.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthenticated("subject not found")
		}
		return nil, apperrors.NewInternalError(err)
	}

	profiles, err := s.profiles.ListByUserID(ctx, user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &MeResult{User: user.Subject(), Profiles: profiles}, nil
}

// Issuer exposes the session issuer for cookie handling in handlers.
func (s *AuthService) Issuer() *auth.SessionIssuer {
	return s.issuer
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subject domain.Subject, channel auth.Channel, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Channel:   string(channel),
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("session event handler failed", zap.String("type", string(eventType)), zap.Error(err))
	}
}
