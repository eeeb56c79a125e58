package events

import (
	"time"

	"github.com/spec-kit/movie-browser/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionIssued  EventType = "session_issued"
	EventSessionRenewed EventType = "session_renewed"
	EventSessionCleared EventType = "session_cleared"
	EventRenewalFailed  EventType = "session_renewal_failed"
)

// Event represents a session lifecycle event.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Subject   domain.Subject `json:"subject"`
	Channel   string         `json:"channel"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   interface{}    `json:"payload,omitempty"`
}

// SessionIssuedPayload payload.
type SessionIssuedPayload struct {
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionRenewedPayload payload.
type SessionRenewedPayload struct {
	TokenID        string    `json:"token_id"`
	PreviousExpiry time.Time `json:"previous_expiry"`
	ExpiresAt      time.Time `json:"expires_at"`
	WasExpired     bool      `json:"was_expired"`
}

// RenewalFailedPayload payload.
type RenewalFailedPayload struct {
	Reason string `json:"reason"`
}
