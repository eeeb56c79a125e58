package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-browser/internal/api/http/handlers"
	"github.com/spec-kit/movie-browser/internal/auth"
)

// APIPrefix is the path every route is mounted under.
const APIPrefix = "/api"

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profiles       *handlers.ProfileHandler
	Movies         *handlers.MoviesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group(APIPrefix)

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	api.Post("/auth/login", cfg.Auth.Login)
	api.Get("/movies/popular", cfg.Movies.Popular)

	protected := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireSession()}
	api.Post("/auth/logout", withHandler(protected, cfg.Auth.Logout)...)
	api.Get("/auth/me", withHandler(protected, cfg.Auth.Me)...)
	api.Get("/auth/ping", withHandler(protected, cfg.Auth.Ping)...)

	api.Get("/profile", withHandler(protected, cfg.Profiles.List)...)
	api.Get("/profile/:id", withHandler(protected, cfg.Profiles.Get)...)
}

// withHandler appends the route handler to the chain. Auth runs per route so
// unmatched paths under the prefix still reach the 404 handler.
func withHandler(chain []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, handler)
}
