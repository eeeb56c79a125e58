package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/spec-kit/movie-browser/internal/domain"
)

// MinPasswordLength is the shortest password accepted at login.
const MinPasswordLength = 6

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ParseLoginRequest decodes a login body, rejecting unknown fields.
func ParseLoginRequest(body []byte) (LoginRequest, error) {
	var req LoginRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return LoginRequest{}, fmt.Errorf("invalid payload: %w", err)
	}
	req.Email = strings.TrimSpace(req.Email)
	return req, nil
}

// Validate returns field-level problems, keyed by field name.
func (r LoginRequest) Validate() map[string]any {
	problems := map[string]any{}
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		problems["email"] = "Invalid email format"
	}
	if len(r.Password) < MinPasswordLength {
		problems["password"] = fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength)
	}
	return problems
}

// UserResponse is the public view of a subject.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NewUserResponse converts a subject.
func NewUserResponse(s domain.Subject) UserResponse {
	return UserResponse{ID: s.ID, Email: s.Email}
}

// WebLoginResponse is returned to cookie clients; the token travels only in the cookie.
type WebLoginResponse struct {
	User UserResponse `json:"user"`
}

// APILoginResponse is returned to header clients.
type APILoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// MeData is the payload of GET /auth/me.
type MeData struct {
	User     UserResponse     `json:"user"`
	Profiles []domain.Profile `json:"profiles"`
}

// MessageResponse carries a human readable status.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse wraps a payload with a message.
type DataResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}
