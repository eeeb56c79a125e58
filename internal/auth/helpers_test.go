package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-browser/internal/auth"
	"github.com/spec-kit/movie-browser/internal/domain"
)

const testSecret = "test-secret"

var (
	alice = domain.Subject{ID: "user1", Email: "user@example.com"}
	bob   = domain.Subject{ID: "user2", Email: "user2@example.com"}
)

type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTokens(t *testing.T, clock *testClock) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager(testSecret, auth.WithClock(clock.Now))
	require.NoError(t, err)
	return tokens
}

func findCookie(resp *http.Response, name string) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
