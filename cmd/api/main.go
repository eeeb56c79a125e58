package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/movie-browser/internal/api/http"
	"github.com/spec-kit/movie-browser/internal/api/http/handlers"
	"github.com/spec-kit/movie-browser/internal/auth"
	"github.com/spec-kit/movie-browser/internal/catalog"
	"github.com/spec-kit/movie-browser/internal/config"
	"github.com/spec-kit/movie-browser/internal/events"
	"github.com/spec-kit/movie-browser/internal/observability"
	"github.com/spec-kit/movie-browser/internal/persistence"
	"github.com/spec-kit/movie-browser/internal/repository"
	"github.com/spec-kit/movie-browser/internal/service"
	"github.com/spec-kit/movie-browser/internal/worker"
)

// seedPassword is the password of the in-memory seed users.
const seedPassword = "123456"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.Auth.SecretFromEnv {
		logger.Warn("AUTH_JWT_SECRET not set; signing tokens with the development secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var (
		userRepo    repository.UserRepository
		profileRepo repository.ProfileRepository
	)
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pg.PoolHandle())
		profileRepo = repository.NewProfileRepository(pg.PoolHandle())
	} else {
		hash, err := auth.HashPassword(seedPassword, cfg.Auth.BcryptCost)
		if err != nil {
			logger.Fatal("failed to hash seed password", zap.Error(err))
		}
		userRepo = repository.NewMemoryUserRepository(repository.SeedUsers(hash))
		profileRepo = repository.NewMemoryProfileRepository(repository.SeedProfiles())
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	var cacheClient *redis.Client
	if rdb != nil {
		cacheClient = rdb.Client
	}
	catalogClient := catalog.NewCachedClient(
		catalog.NewHTTPClient(cfg.Catalog, logger),
		cacheClient,
		cfg.Catalog.CacheTTL(),
		logger,
	)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartSessionAuditWorker(service.NewSessionAuditService(dispatcher, logger))

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	issuer := auth.NewSessionIssuer(tokens, auth.IssuerConfig{
		WebTTL: cfg.Auth.WebTokenTTL(),
		APITTL: cfg.Auth.APITokenTTL(),
		Cookie: auth.CookiePolicy{
			Name:   cfg.Auth.CookieName,
			Path:   "/",
			MaxAge: cfg.Auth.CookieMaxAge(),
			Secure: cfg.App.IsProduction(),
		},
	})
	gate := auth.NewGate(tokens, auth.WithRenewalCeiling(cfg.Auth.CookieMaxAge()))
	renewal := auth.NewRenewalPolicy(issuer, logger, metrics, dispatcher)
	authMiddleware := auth.NewAuthMiddleware(auth.NewExtractor(cfg.Auth.CookieName), gate, renewal, logger)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Issuer:      issuer,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	profileService := service.NewProfileService(profileRepo)
	movieService := service.NewMovieService(catalogClient)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:         cfg.App.RequestTimeout(),
		FrontendOrigins: cfg.App.FrontendOrigins,
	})

	dependencies := map[string]handlers.Pinger{}
	if pg.Enabled() {
		dependencies["postgres"] = pg
	}
	if rdb != nil {
		dependencies["redis"] = rdb
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth.KeepAliveInterval()),
		Profiles:       handlers.NewProfileHandler(profileService),
		Movies:         handlers.NewMoviesHandler(movieService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
