package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-browser/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, config.DevelopmentSecret, cfg.Auth.JWTSecret)
	require.False(t, cfg.Auth.SecretFromEnv)
	require.Equal(t, 15*time.Minute, cfg.Auth.WebTokenTTL())
	require.Equal(t, 60*time.Minute, cfg.Auth.APITokenTTL())
	require.Equal(t, 60*time.Minute, cfg.Auth.CookieMaxAge())
	require.Equal(t, 10*time.Minute, cfg.Auth.KeepAliveInterval())
	require.Equal(t, "jwt", cfg.Auth.CookieName)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.App.FrontendOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_WEB_TOKEN_TTL_MINUTES", "5")
	t.Setenv("AUTH_API_TOKEN_TTL_MINUTES", "120")
	t.Setenv("AUTH_COOKIE_MAX_AGE_MINUTES", "30")
	t.Setenv("AUTH_KEEPALIVE_INTERVAL_MINUTES", "4")
	t.Setenv("FRONTEND_ORIGIN", "https://a.example, https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	require.True(t, cfg.Auth.SecretFromEnv)
	require.Equal(t, 5*time.Minute, cfg.Auth.WebTokenTTL())
	require.Equal(t, 120*time.Minute, cfg.Auth.APITokenTTL())
	require.Equal(t, 30*time.Minute, cfg.Auth.CookieMaxAge())
	require.Equal(t, 4*time.Minute, cfg.Auth.KeepAliveInterval())
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.FrontendOrigins)
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("AUTH_JWT_SECRET", config.DevelopmentSecret)
	_, err = config.Load()
	require.Error(t, err)

	t.Setenv("AUTH_JWT_SECRET", "prod-secret")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.True(t, cfg.App.IsProduction())
}

func TestValidateKeepAliveInterval(t *testing.T) {
	t.Setenv("AUTH_COOKIE_MAX_AGE_MINUTES", "10")
	t.Setenv("AUTH_KEEPALIVE_INTERVAL_MINUTES", "10")

	_, err := config.Load()
	require.Error(t, err)
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("AUTH_WEB_TOKEN_TTL_MINUTES", "0")

	_, err := config.Load()
	require.Error(t, err)
}
