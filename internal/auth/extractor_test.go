package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-browser/internal/auth"
)

func TestExtractorFromParts(t *testing.T) {
	e := auth.NewExtractor("jwt")

	tests := []struct {
		name          string
		cookie        string
		authorization string
		want          auth.Credential
	}{
		{
			name:   "cookie only",
			cookie: "c-token",
			want:   auth.Credential{Channel: auth.ChannelCookie, Token: "c-token"},
		},
		{
			name:          "bearer header only",
			authorization: "Bearer h-token",
			want:          auth.Credential{Channel: auth.ChannelHeader, Token: "h-token"},
		},
		{
			name:          "scheme is case insensitive",
			authorization: "bearer h-token",
			want:          auth.Credential{Channel: auth.ChannelHeader, Token: "h-token"},
		},
		{
			name:          "cookie wins over header",
			cookie:        "c-token",
			authorization: "Bearer h-token",
			want:          auth.Credential{Channel: auth.ChannelCookie, Token: "c-token"},
		},
		{
			name:          "empty cookie falls back to header",
			cookie:        "  ",
			authorization: "Bearer h-token",
			want:          auth.Credential{Channel: auth.ChannelHeader, Token: "h-token"},
		},
		{
			name:          "non bearer scheme",
			authorization: "Basic dXNlcjpwYXNz",
			want:          auth.Credential{},
		},
		{
			name:          "bearer without token",
			authorization: "Bearer ",
			want:          auth.Credential{},
		},
		{
			name: "nothing",
			want: auth.Credential{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.FromParts(tt.cookie, tt.authorization)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want.Channel != auth.ChannelNone, got.Present())
		})
	}
}

func TestChannelForClientType(t *testing.T) {
	require.Equal(t, auth.ChannelCookie, auth.ChannelForClientType("web"))
	require.Equal(t, auth.ChannelCookie, auth.ChannelForClientType(" Web "))
	require.Equal(t, auth.ChannelHeader, auth.ChannelForClientType("mobile"))
	require.Equal(t, auth.ChannelHeader, auth.ChannelForClientType(""))
}
