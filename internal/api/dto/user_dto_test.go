package dto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-browser/internal/api/dto"
)

func TestParseLoginRequest(t *testing.T) {
	req, err := dto.ParseLoginRequest([]byte(`{"email":" user@example.com ","password":"123456"}`))
	require.NoError(t, err)
	require.Equal(t, "user@example.com", req.Email)
	require.Empty(t, req.Validate())

	_, err = dto.ParseLoginRequest([]byte(`{"email":"user@example.com","password":"123456","role":"admin"}`))
	require.Error(t, err)

	_, err = dto.ParseLoginRequest([]byte(`not json`))
	require.Error(t, err)
}

func TestLoginRequestValidate(t *testing.T) {
	problems := dto.LoginRequest{Email: "not-an-email", Password: "123"}.Validate()
	require.Contains(t, problems, "email")
	require.Contains(t, problems, "password")

	problems = dto.LoginRequest{Email: "Name <user@example.com>", Password: "123456"}.Validate()
	require.Contains(t, problems, "email")
}
