// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labsuite_backend/internals/helpers/authz"
	authMiddleware "labsuite_backend/internals/middlewares/auth"
	routeDetails "labsuite_backend/internals/route/details"
)

var startTime = time.Now()

// SetupRoutes mounts base routes, then the public settings routes, then the
// protected /api/settings group. Public routes must be registered before the
// group so the auth middleware never sees them.
func SetupRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger, a *authz.Authorizer, jwtSecret string) {
	if log == nil {
		log = zap.NewNop()
	}
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Info("mounting public settings routes")
	public := app.Group("/api/settings")
	routeDetails.SettingsPublicRoutes(public, db, log)

	// ===================== ADMIN =====================
	log.Info("mounting admin settings routes")
	admin := app.Group("/api/settings", authMiddleware.AuthJWT(jwtSecret, log))
	can := authMiddleware.RequirePermission(a, log)
	routeDetails.SettingsAdminRoutes(admin, db, log, can)
}
