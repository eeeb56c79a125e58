package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestIDKey is the fiber locals key the requestid middleware stores ids under.
const RequestIDKey = "requestid"

// UnmatchedRoute labels requests that reached no registered route.
const UnmatchedRoute = "unmatched"

// RoutePattern returns the registered route template for metric keys, so counters
// stay bounded by the route table rather than by client-supplied paths.
func RoutePattern(c *fiber.Ctx) string {
	route := c.Route()
	if route == nil || route.Path == "" || route.Method == "USE" || len(route.Handlers) == 0 {
		return UnmatchedRoute
	}
	return route.Path
}

// RequestLogger logs every request once it completes and feeds the request counters.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		duration := time.Since(start)

		status := c.Response().StatusCode()
		metrics.RecordRequest(RoutePattern(c), c.Method(), status, duration)

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		}
		if id, ok := c.Locals(RequestIDKey).(string); ok && id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if status >= fiber.StatusInternalServerError {
			logger.Warn("request completed", fields...)
		} else {
			logger.Info("request completed", fields...)
		}
		return nil
	}
}
