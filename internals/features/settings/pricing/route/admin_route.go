package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labsuite_backend/internals/constants"
	"labsuite_backend/internals/features/settings/pricing/controller"
)

// PricingRoutes mounts price lists, distance rates and mixer types.
func PricingRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, can func(string) fiber.Handler) {
	read := can(constants.PermSettingsRead)
	create := can(constants.PermSettingsCreate)
	update := can(constants.PermSettingsUpdate)
	del := can(constants.PermSettingsDelete)

	pl := controller.NewPriceListController(db, log)
	lists := r.Group("/price-lists")
	lists.Post("/", create, pl.Create)
	lists.Get("/", read, pl.List)
	lists.Get("/:id", read, pl.Get)
	lists.Patch("/:id", update, pl.Patch)
	lists.Delete("/:id", del, pl.Delete)
	lists.Post("/:id/items", create, pl.AddItem)
	lists.Patch("/:id/items/:itemId", update, pl.PatchItem)
	lists.Delete("/:id/items/:itemId", del, pl.DeleteItem)

	dr := controller.NewDistanceRateController(db, log)
	rates := r.Group("/distance-rates")
	rates.Get("/quote", read, dr.Quote) // before /:id
	rates.Post("/", create, dr.Create)
	rates.Get("/", read, dr.List)
	rates.Get("/:id", read, dr.Get)
	rates.Patch("/:id", update, dr.Patch)
	rates.Delete("/:id", del, dr.Delete)

	mx := controller.NewMixerTypeController(db, log)
	mixers := r.Group("/mixer-types")
	mixers.Post("/", create, mx.Create)
	mixers.Get("/", read, mx.List)
	mixers.Get("/:id", read, mx.Get)
	mixers.Patch("/:id", update, mx.Patch)
	mixers.Delete("/:id", del, mx.Delete)
}
