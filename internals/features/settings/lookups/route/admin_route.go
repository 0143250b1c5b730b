package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labsuite_backend/internals/constants"
	"labsuite_backend/internals/features/settings/lookups/controller"
)

func LookupRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, can func(string) fiber.Handler) {
	ctl := controller.NewLookupController(db, log)
	read := can(constants.PermSettingsRead)

	g := r.Group("/lookups")
	g.Get("/by-code/:code", read, ctl.GetCategoryByCode)

	cats := g.Group("/categories")
	cats.Post("/", can(constants.PermSettingsCreate), ctl.CreateCategory)
	cats.Get("/", read, ctl.ListCategories)
	cats.Get("/:id", read, ctl.GetCategory)
	cats.Patch("/:id", can(constants.PermSettingsUpdate), ctl.PatchCategory)
	cats.Delete("/:id", can(constants.PermSettingsDelete), ctl.DeleteCategory)
	cats.Post("/:id/items", can(constants.PermSettingsCreate), ctl.CreateItem)

	items := g.Group("/items")
	items.Patch("/:itemId", can(constants.PermSettingsUpdate), ctl.PatchItem)
	items.Delete("/:itemId", can(constants.PermSettingsDelete), ctl.DeleteItem)
}
