package auth

import (
	"time"

	"github.com/spec-kit/movie-browser/internal/domain"
)

// Verdict is the tri-state outcome of validating a credential.
type Verdict int

const (
	VerdictRejected Verdict = iota
	VerdictValid
	VerdictExpiredRenewable
)

func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "valid"
	case VerdictExpiredRenewable:
		return "expired_renewable"
	default:
		return "rejected"
	}
}

// Decision carries the verdict plus what the request may learn from it.
type Decision struct {
	Verdict Verdict
	Channel Channel
	Subject domain.Subject
	Payload Payload
	Err     error
}

// Accepted reports whether the request may proceed.
func (d Decision) Accepted() bool {
	return d.Verdict == VerdictValid || d.Verdict == VerdictExpiredRenewable
}

// RenewalRequired reports whether the request was let through only so it can be renewed.
func (d Decision) RenewalRequired() bool {
	return d.Verdict == VerdictExpiredRenewable
}

// TokenVerifier verifies signed tokens.
type TokenVerifier interface {
	Verify(token string) (Payload, bool, error)
	Now() time.Time
}

// Gate decides whether a credential authenticates a request.
type Gate struct {
	tokens  TokenVerifier
	ceiling time.Duration
}

// GateOption customizes a Gate.
type GateOption func(*Gate)

// WithRenewalCeiling rejects expired cookie tokens issued more than d ago. Callers pass
// the session cookie's max age: a browser drops the cookie after that much inactivity, so
// a token older than that can only come from a replayed cookie value. Zero leaves the
// grace branch unbounded.
func WithRenewalCeiling(d time.Duration) GateOption {
	return func(g *Gate) {
		if d > 0 {
			g.ceiling = d
		}
	}
}

// NewGate builds a validation gate.
func NewGate(tokens TokenVerifier, opts ...GateOption) *Gate {
	g := &Gate{tokens: tokens}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate validates the credential. Expired header tokens are rejected; expired cookie
// tokens are accepted so a replacement can be minted before the response is sent.
func (g *Gate) Evaluate(cred Credential) Decision {
	if !cred.Present() {
		return Decision{Verdict: VerdictRejected, Err: ErrNoCredential}
	}

	payload, expired, err := g.tokens.Verify(cred.Token)
	if err != nil {
		return Decision{Verdict: VerdictRejected, Channel: cred.Channel, Err: err}
	}
	if payload.Subject == "" {
		return Decision{Verdict: VerdictRejected, Channel: cred.Channel, Err: ErrMissingSubject}
	}

	decision := Decision{
		Verdict: VerdictValid,
		Channel: cred.Channel,
		Subject: payload.SubjectOf(),
		Payload: payload,
	}
	if !expired {
		return decision
	}

	switch cred.Channel {
	case ChannelCookie:
		if g.ceiling > 0 && !g.tokens.Now().Before(payload.IssuedAt.Add(g.ceiling)) {
			return Decision{Verdict: VerdictRejected, Channel: cred.Channel, Err: ErrRenewalWindowExceeded}
		}
		decision.Verdict = VerdictExpiredRenewable
		return decision
	default:
		return Decision{Verdict: VerdictRejected, Channel: cred.Channel, Payload: payload, Err: ErrTokenExpired}
	}
}
