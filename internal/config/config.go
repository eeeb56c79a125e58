package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevelopmentSecret signs tokens when no secret is configured outside production.
const DevelopmentSecret = "dev-secret"

// EnvProduction is the APP_ENV value that enables production-only behavior.
const EnvProduction = "production"

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	FrontendOrigins       []string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines session token parameters.
type AuthConfig struct {
	JWTSecret                string
	SecretFromEnv            bool
	WebTokenTTLMinutes       int
	APITokenTTLMinutes       int
	CookieName               string
	CookieMaxAgeMinutes      int
	KeepAliveIntervalMinutes int
	BcryptCost               int
}

// CatalogConfig points at the upstream movie catalog API.
type CatalogConfig struct {
	BaseURL         string
	AccessToken     string
	TimeoutSeconds  int
	CacheTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	secret := os.Getenv("AUTH_JWT_SECRET")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "movie-browser"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			FrontendOrigins:       getEnvAsList("FRONTEND_ORIGIN", []string{"http://localhost:3000"}),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:                getEnv("AUTH_JWT_SECRET", DevelopmentSecret),
			SecretFromEnv:            secret != "",
			WebTokenTTLMinutes:       getEnvAsInt("AUTH_WEB_TOKEN_TTL_MINUTES", 15),
			APITokenTTLMinutes:       getEnvAsInt("AUTH_API_TOKEN_TTL_MINUTES", 60),
			CookieName:               getEnv("AUTH_COOKIE_NAME", "jwt"),
			CookieMaxAgeMinutes:      getEnvAsInt("AUTH_COOKIE_MAX_AGE_MINUTES", 60),
			KeepAliveIntervalMinutes: getEnvAsInt("AUTH_KEEPALIVE_INTERVAL_MINUTES", 10),
			BcryptCost:               getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		Catalog: CatalogConfig{
			BaseURL:         getEnv("TMDB_URL", "https://api.themoviedb.org/3"),
			AccessToken:     os.Getenv("TMDB_TOKEN"),
			TimeoutSeconds:  getEnvAsInt("CATALOG_TIMEOUT_SECONDS", 10),
			CacheTTLSeconds: getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 300),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service must not start with.
func (c *Config) Validate() error {
	if c.App.IsProduction() && (!c.Auth.SecretFromEnv || c.Auth.JWTSecret == DevelopmentSecret) {
		return errors.New("AUTH_JWT_SECRET must be set explicitly in production")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET must not be empty")
	}
	if c.Auth.WebTokenTTLMinutes <= 0 {
		return fmt.Errorf("invalid AUTH_WEB_TOKEN_TTL_MINUTES: %d", c.Auth.WebTokenTTLMinutes)
	}
	if c.Auth.APITokenTTLMinutes <= 0 {
		return fmt.Errorf("invalid AUTH_API_TOKEN_TTL_MINUTES: %d", c.Auth.APITokenTTLMinutes)
	}
	if c.Auth.CookieMaxAgeMinutes <= 0 {
		return fmt.Errorf("invalid AUTH_COOKIE_MAX_AGE_MINUTES: %d", c.Auth.CookieMaxAgeMinutes)
	}
	if c.Auth.KeepAliveIntervalMinutes <= 0 || c.Auth.KeepAliveIntervalMinutes >= c.Auth.CookieMaxAgeMinutes {
		return fmt.Errorf("AUTH_KEEPALIVE_INTERVAL_MINUTES must be between 1 and %d", c.Auth.CookieMaxAgeMinutes-1)
	}
	if c.Auth.CookieName == "" {
		return errors.New("AUTH_COOKIE_NAME must not be empty")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// IsProduction reports whether the service runs in production mode.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, EnvProduction)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// WebTokenTTL is the internal lifetime of cookie-channel tokens.
func (a AuthConfig) WebTokenTTL() time.Duration {
	return time.Duration(a.WebTokenTTLMinutes) * time.Minute
}

// APITokenTTL is the fixed lifetime of header-channel tokens.
func (a AuthConfig) APITokenTTL() time.Duration {
	return time.Duration(a.APITokenTTLMinutes) * time.Minute
}

// CookieMaxAge bounds how long an idle browser session survives.
func (a AuthConfig) CookieMaxAge() time.Duration {
	return time.Duration(a.CookieMaxAgeMinutes) * time.Minute
}

// KeepAliveInterval is the ping cadence advertised to web clients.
func (a AuthConfig) KeepAliveInterval() time.Duration {
	return time.Duration(a.KeepAliveIntervalMinutes) * time.Minute
}

// Timeout returns the upstream request timeout.
func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long upstream responses stay cached; zero disables caching.
func (c CatalogConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
