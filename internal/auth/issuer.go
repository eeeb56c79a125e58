package auth

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-browser/internal/domain"
)

// CookiePolicy fixes the attributes of the session cookie.
type CookiePolicy struct {
	Name   string
	Path   string
	MaxAge time.Duration
	Secure bool
}

// IssuerConfig holds per-channel token lifetimes.
type IssuerConfig struct {
	WebTTL time.Duration
	APITTL time.Duration
	Cookie CookiePolicy
}

// IssuedToken is a freshly signed token and the policy it was issued under.
type IssuedToken struct {
	Token     string
	Channel   Channel
	TTL       time.Duration
	Payload   Payload
	ExpiresAt time.Time
}

// TokenSigner signs session tokens.
type TokenSigner interface {
	Sign(subject domain.Subject, ttl time.Duration) (string, Payload, error)
}

// SessionIssuer mints tokens whose lifetime depends on the client channel.
type SessionIssuer struct {
	tokens TokenSigner
	cfg    IssuerConfig
}

// NewSessionIssuer constructs an issuer, filling unset values with defaults.
func NewSessionIssuer(tokens TokenSigner, cfg IssuerConfig) *SessionIssuer {
	if cfg.WebTTL <= 0 {
		cfg.WebTTL = 15 * time.Minute
	}
	if cfg.APITTL <= 0 {
		cfg.APITTL = 60 * time.Minute
	}
	if cfg.Cookie.Name == "" {
		cfg.Cookie.Name = "jwt"
	}
	if cfg.Cookie.Path == "" {
		cfg.Cookie.Path = "/"
	}
	if cfg.Cookie.MaxAge <= 0 {
		cfg.Cookie.MaxAge = 60 * time.Minute
	}
	return &SessionIssuer{tokens: tokens, cfg: cfg}
}

// TTLFor returns the token lifetime used for the channel.
func (i *SessionIssuer) TTLFor(channel Channel) (time.Duration, error) {
	switch channel {
	case ChannelCookie:
		return i.cfg.WebTTL, nil
	case ChannelHeader:
		return i.cfg.APITTL, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedChannel, channel)
	}
}

// Issue signs a new token for the subject under the channel's policy.
func (i *SessionIssuer) Issue(subject domain.Subject, channel Channel) (IssuedToken, error) {
	ttl, err := i.TTLFor(channel)
	if err != nil {
		return IssuedToken{}, err
	}
	token, payload, err := i.tokens.Sign(subject, ttl)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("sign %s token: %w", channel, err)
	}
	return IssuedToken{
		Token:     token,
		Channel:   channel,
		TTL:       ttl,
		Payload:   payload,
		ExpiresAt: payload.ExpiresAt,
	}, nil
}

// CookieName returns the session cookie name.
func (i *SessionIssuer) CookieName() string {
	return i.cfg.Cookie.Name
}

// CookieMaxAge returns the inactivity window enforced by the cookie.
func (i *SessionIssuer) CookieMaxAge() time.Duration {
	return i.cfg.Cookie.MaxAge
}

// SessionCookie wraps a token in the session cookie. The cookie outlives the token;
// its max age is the inactivity window and is re-armed on every renewal.
func (i *SessionIssuer) SessionCookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     i.cfg.Cookie.Name,
		Value:    token,
		Path:     i.cfg.Cookie.Path,
		MaxAge:   int(i.cfg.Cookie.MaxAge / time.Second),
		Secure:   i.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ClearedCookie expires the session cookie with the same attributes it was set with.
func (i *SessionIssuer) ClearedCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     i.cfg.Cookie.Name,
		Value:    "",
		Path:     i.cfg.Cookie.Path,
		Expires:  time.Unix(0, 0).UTC(),
		Secure:   i.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
