package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/movie-browser/internal/domain"
)

// Clock returns the current time. Tests substitute a controllable one.
type Clock func() time.Time

// Claims describes JWT payload.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Payload is the decoded, immutable content of a session token.
type Payload struct {
	Subject   string
	Email     string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SubjectOf returns the principal carried by the payload.
func (p Payload) SubjectOf() domain.Subject {
	return domain.Subject{ID: p.Subject, Email: p.Email}
}

// TokenManager signs and verifies HS256 session tokens with a single process secret.
type TokenManager struct {
	secret []byte
	now    Clock
	parser *jwt.Parser
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(clock Clock) TokenOption {
	return func(tm *TokenManager) {
		if clock != nil {
			tm.now = clock
		}
	}
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	tm := &TokenManager{
		secret: []byte(secret),
		now:    time.Now,
		// Expiry is reported to the caller rather than enforced here.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm, nil
}

// Now returns the manager's notion of the current time.
func (tm *TokenManager) Now() time.Time {
	return tm.now()
}

// Sign builds and signs a token for the subject that expires ttl after issuance.
func (tm *TokenManager) Sign(subject domain.Subject, ttl time.Duration) (string, Payload, error) {
	if ttl <= 0 {
		return "", Payload{}, fmt.Errorf("invalid token ttl %s", ttl)
	}
	issuedAt := tm.now()
	claims := &Claims{
		Email: subject.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", Payload{}, err
	}
	return tokenString, payloadFromClaims(claims), nil
}

// Verify checks signature and structure and reports whether the token has expired.
// Any failure is wrapped in ErrMalformedToken.
func (tm *TokenManager) Verify(tokenStr string) (Payload, bool, error) {
	claims := &Claims{}
	parsed, err := tm.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil {
		return Payload{}, false, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if !parsed.Valid {
		return Payload{}, false, ErrMalformedToken
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return Payload{}, false, fmt.Errorf("%w: missing iat or exp", ErrMalformedToken)
	}

	payload := payloadFromClaims(claims)
	expired := !tm.now().Before(payload.ExpiresAt)
	return payload, expired, nil
}

func payloadFromClaims(claims *Claims) Payload {
	return Payload{
		Subject:   claims.Subject,
		Email:     claims.Email,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
}
