package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/movie-browser/internal/api/http"
	"github.com/spec-kit/movie-browser/internal/api/http/handlers"
	"github.com/spec-kit/movie-browser/internal/auth"
	"github.com/spec-kit/movie-browser/internal/events"
	"github.com/spec-kit/movie-browser/internal/observability"
	"github.com/spec-kit/movie-browser/internal/repository"
	"github.com/spec-kit/movie-browser/internal/service"
)

const (
	cookieName = "jwt"
	webTTL     = 15 * time.Minute
	apiTTL     = 60 * time.Minute
	cookieAge  = 60 * time.Minute
	keepAlive  = 10 * time.Minute
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type stubCatalog struct {
	body json.RawMessage
	err  error
}

func (s *stubCatalog) PopularMovies(context.Context, int, string) (json.RawMessage, error) {
	return s.body, s.err
}

type server struct {
	app     *fiber.App
	clock   *clock
	metrics *observability.Metrics
	catalog *stubCatalog
}

func newServer(t *testing.T) *server {
	t.Helper()
	clk := &clock{now: time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)}
	tokens, err := auth.NewTokenManager("test-secret", auth.WithClock(clk.Now))
	require.NoError(t, err)

	hash, err := auth.HashPassword("123456", bcrypt.MinCost)
	require.NoError(t, err)
	users := repository.NewMemoryUserRepository(repository.SeedUsers(hash))
	profiles := repository.NewMemoryProfileRepository(repository.SeedProfiles())

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	issuer := auth.NewSessionIssuer(tokens, auth.IssuerConfig{
		WebTTL: webTTL,
		APITTL: apiTTL,
		Cookie: auth.CookiePolicy{Name: cookieName, Path: "/", MaxAge: cookieAge},
	})
	mw := auth.NewAuthMiddleware(
		auth.NewExtractor(cookieName),
		auth.NewGate(tokens, auth.WithRenewalCeiling(cookieAge)),
		auth.NewRenewalPolicy(issuer, logger, metrics, dispatcher),
		logger,
	)
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:    users,
		ProfileRepo: profiles,
		Issuer:      issuer,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	catalog := &stubCatalog{body: json.RawMessage(`{"page":1,"results":[{"id":550}]}`)}

	app := fiber.New(fiber.Config{ErrorHandler: httptransport.ErrorHandler(logger, metrics)})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		FrontendOrigins: []string{"http://localhost:3000"},
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("movie-browser", "test", nil),
		Auth:           handlers.NewAuthHandler(authService, keepAlive),
		Profiles:       handlers.NewProfileHandler(service.NewProfileService(profiles)),
		Movies:         handlers.NewMoviesHandler(service.NewMovieService(catalog)),
		AuthMiddleware: mw,
	})
	return &server{app: app, clock: clk, metrics: metrics, catalog: catalog}
}

type requestOption func(*http.Request)

func withCookie(value string) requestOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: cookieName, Value: value}) }
}

func withBearer(token string) requestOption {
	return func(r *http.Request) { r.Header.Set(fiber.HeaderAuthorization, "Bearer "+token) }
}

func withWebClient() requestOption {
	return func(r *http.Request) { r.Header.Set(auth.ClientTypeHeader, "web") }
}

func (s *server) do(t *testing.T, method, path, body string, opts ...requestOption) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for _, opt := range opts {
		opt(req)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *server) webLogin(t *testing.T) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"123456"}`, withWebClient())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	return cookie.Value
}

func (s *server) apiLogin(t *testing.T) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"123456"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	token, ok := body["access_token"].(string)
	require.True(t, ok)
	return token
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == cookieName {
			return cookie
		}
	}
	return nil
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body := decode(t, resp)
	envelope, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	return envelope["code"].(string)
}

func TestWebLoginSetsCookieWithoutExposingToken(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"123456"}`, withWebClient())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "600", resp.Header.Get(handlers.KeepAliveHeader))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(cookieAge/time.Second), cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	body := decode(t, resp)
	assert.NotContains(t, body, "access_token")
	user := body["user"].(map[string]any)
	assert.Equal(t, "user1", user["id"])
	assert.Equal(t, "user@example.com", user["email"])
}

func TestAPILoginReturnsBearerToken(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"user2@example.com","password":"123456"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))

	body := decode(t, resp)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "user2", body["user"].(map[string]any)["id"])
	expiresAt, err := time.Parse(time.RFC3339, body["expires_at"].(string))
	require.NoError(t, err)
	assert.True(t, expiresAt.Equal(s.clock.Now().Add(apiTTL)))
}

func TestLoginRejectsBadInput(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"not-an-email","password":"123"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	envelope := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", envelope["code"])
	details := envelope["details"].(map[string]any)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")

	resp = s.do(t, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"123456","role":"admin"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, resp))
}

func TestLoginFailsUniformly(t *testing.T) {
	s := newServer(t)

	wrongPassword := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"user@example.com","password":"wrong-pass"}`)
	unknownUser := s.do(t, http.MethodPost, "/api/auth/login", `{"email":"nobody@example.com","password":"123456"}`)

	require.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknownUser.StatusCode)
	assert.Equal(t, decode(t, wrongPassword), decode(t, unknownUser))
}

func TestMeReturnsUserAndProfiles(t *testing.T) {
	s := newServer(t)
	token := s.webLogin(t)

	resp := s.do(t, http.MethodGet, "/api/auth/me", "", withCookie(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, sessionCookie(resp), "successful cookie request renews the session")

	body := decode(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "user@example.com", data["user"].(map[string]any)["email"])
	profiles := data["profiles"].([]any)
	require.Len(t, profiles, 3)
	assert.Equal(t, "p1", profiles[0].(map[string]any)["id"])
	assert.Equal(t, "user1", profiles[0].(map[string]any)["userId"])
}

func TestPingWithoutCredentialsIsUnauthenticated(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodGet, "/api/auth/ping", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
}

func TestPingRenewsExpiredWebSession(t *testing.T) {
	s := newServer(t)
	first := s.webLogin(t)

	s.clock.Advance(webTTL + 5*time.Minute)

	resp := s.do(t, http.MethodGet, "/api/auth/ping", "", withCookie(first))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Auth session active.", decode(t, resp)["message"])

	renewed := sessionCookie(resp)
	require.NotNil(t, renewed)
	assert.NotEqual(t, first, renewed.Value)

	resp = s.do(t, http.MethodGet, "/api/auth/me", "", withCookie(renewed.Value))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), s.metrics.SessionCount("renewed", string(auth.ChannelCookie)))
}

func TestIdleWebSessionEndsAfterCookieMaxAge(t *testing.T) {
	s := newServer(t)
	token := s.webLogin(t)

	s.clock.Advance(cookieAge + time.Minute)

	resp := s.do(t, http.MethodGet, "/api/auth/ping", "", withCookie(token))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
}

func TestBearerTokenIsNeverRenewed(t *testing.T) {
	s := newServer(t)
	token := s.apiLogin(t)

	resp := s.do(t, http.MethodGet, "/api/auth/me", "", withBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))

	s.clock.Advance(apiTTL + time.Second)

	resp = s.do(t, http.MethodGet, "/api/auth/me", "", withBearer(token))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, resp))
}

func TestLogoutClearsCookieButTokenStaysValid(t *testing.T) {
	s := newServer(t)
	token := s.webLogin(t)

	resp := s.do(t, http.MethodPost, "/api/auth/logout", "", withCookie(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := sessionCookie(resp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(s.clock.Now()))
	assert.Equal(t, "Logout successful, JWT cookie cleared.", decode(t, resp)["message"])

	resp = s.do(t, http.MethodGet, "/api/auth/ping", "", withBearer(token))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfilesAreScopedToSubject(t *testing.T) {
	s := newServer(t)
	token := s.apiLogin(t)

	resp := s.do(t, http.MethodGet, "/api/profile", "", withBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["data"].([]any), 3)

	resp = s.do(t, http.MethodGet, "/api/profile/p2", "", withBearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "B", decode(t, resp)["data"].(map[string]any)["name"])

	resp = s.do(t, http.MethodGet, "/api/profile/p4", "", withBearer(token))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestPopularMoviesPassThrough(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodGet, "/api/movies/popular?page=2&language=de-DE", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1,"results":[{"id":550}]}`, string(raw))

	s.catalog.err = errors.New("connection refused")
	resp = s.do(t, http.MethodGet, "/api/movies/popular", "")
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", errorCode(t, resp))
}

func TestHealthEndpoints(t *testing.T) {
	s := newServer(t)

	resp := s.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp)["status"])

	resp = s.do(t, http.MethodGet, "/api/health/ready", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", decode(t, resp)["status"])
}

func TestUnknownRouteUsesErrorEnvelope(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{"/api/nope", "/api/health/extra", "/api/movies/unknown", "/api/auth/unknown"} {
		resp := s.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, "NOT_FOUND", errorCode(t, resp), path)
	}
}

func TestProtectedRoutesStillRequireSession(t *testing.T) {
	s := newServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/auth/ping"},
		{http.MethodGet, "/api/profile"},
		{http.MethodGet, "/api/profile/p1"},
	} {
		resp := s.do(t, route.method, route.path, "")
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, route.path)
		assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp), route.path)
	}
}

func TestMetricsKeyedByRouteTemplate(t *testing.T) {
	s := newServer(t)
	token := s.apiLogin(t)

	for _, id := range []string{"p1", "p2", "p3"} {
		resp := s.do(t, http.MethodGet, "/api/profile/"+id, "", withBearer(token))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	for _, path := range []string{"/api/a", "/api/b", "/api/c"} {
		resp := s.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	assert.EqualValues(t, 3, s.metrics.RequestCount("/api/profile/:id", http.MethodGet, http.StatusOK))
	assert.EqualValues(t, 3, s.metrics.RequestCount(observability.UnmatchedRoute, http.MethodGet, http.StatusNotFound))
	assert.EqualValues(t, 3, s.metrics.ErrorCount(observability.UnmatchedRoute, http.MethodGet, "NOT_FOUND"))
	for _, route := range s.metrics.Routes() {
		assert.NotContains(t, []string{"/api/a", "/api/b", "/api/c", "/api/profile/p1"}, route)
	}
}
