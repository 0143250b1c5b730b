package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"labsuite_backend/internals/configs"
	"labsuite_backend/internals/metrics"
	"labsuite_backend/internals/middlewares/logger"
)

// requestTimeout bounds a handler, in line with the DB statement_timeout.
const requestTimeout = 5 * time.Second

// SetupMiddlewares installs the global chain. Request id runs first, then recovery.
func SetupMiddlewares(app *fiber.App, log *zap.Logger) {
	app.Use(RequestIDMiddleware())
	app.Use(RecoveryMiddleware(log))
	app.Use(metrics.Middleware())
	if configs.LogFormat == "console" {
		app.Use(logger.LoggerMiddleware())
	} else {
		app.Use(logger.ZapMiddleware(log))
	}
	app.Use(CorsMiddleware(configs.CorsOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter(configs.RateLimitMax))
	app.Use(WriteRateLimiter(configs.WriteLimitMax))
	app.Use(TimeoutContext(requestTimeout))
}

// TimeoutContext puts a deadline on the user context seen by services.
func TimeoutContext(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
