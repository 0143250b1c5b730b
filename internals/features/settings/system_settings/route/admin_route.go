package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labsuite_backend/internals/constants"
	"labsuite_backend/internals/features/settings/system_settings/controller"
)

func SystemSettingRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, can func(string) fiber.Handler) {
	ctl := controller.NewSystemSettingController(db, log)
	read := can(constants.PermSettingsRead)
	update := can(constants.PermSettingsUpdate)

	g := r.Group("/system")
	g.Post("/", can(constants.PermSettingsCreate), ctl.Create)
	g.Get("/", read, ctl.List)
	g.Patch("/", update, ctl.BulkUpdate)
	g.Get("/:key/value", read, ctl.GetValue)
	g.Get("/:key", read, ctl.Get)
	g.Patch("/:key", update, ctl.Patch)
	g.Delete("/:key", can(constants.PermSettingsDelete), ctl.Delete)
}
