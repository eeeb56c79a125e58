package auth

import "errors"

var (
	// ErrNoCredential means neither the session cookie nor a bearer header was sent.
	ErrNoCredential = errors.New("no credential presented")
	// ErrMalformedToken covers bad signatures, foreign algorithms and missing fields.
	ErrMalformedToken = errors.New("malformed token")
	// ErrMissingSubject is returned for tokens without a subject id.
	ErrMissingSubject = errors.New("token has no subject")
	// ErrTokenExpired is returned for expired header-channel tokens.
	ErrTokenExpired = errors.New("token expired")
	// ErrRenewalWindowExceeded is returned for cookie tokens older than the renewal ceiling.
	ErrRenewalWindowExceeded = errors.New("session inactivity window exceeded")
	// ErrUnsupportedChannel is returned when issuing for an unknown channel.
	ErrUnsupportedChannel = errors.New("unsupported channel")
)
