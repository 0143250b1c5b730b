package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labsuite_backend/internals/features/settings/system_settings/controller"
)

// SystemSettingPublicRoutes must be mounted before any auth middleware.
func SystemSettingPublicRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctl := controller.NewSystemSettingController(db, log)
	r.Get("/system/public", ctl.Public)
}
