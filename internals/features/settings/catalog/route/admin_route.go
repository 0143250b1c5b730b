package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labsuite_backend/internals/constants"
	"labsuite_backend/internals/features/settings/catalog/controller"
)

// CatalogRoutes mounts test types, sample types and standards.
// can builds the permission guard for a single permission.
func CatalogRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, can func(string) fiber.Handler) {
	read := can(constants.PermSettingsRead)
	create := can(constants.PermSettingsCreate)
	update := can(constants.PermSettingsUpdate)
	del := can(constants.PermSettingsDelete)

	tt := controller.NewTestTypeController(db, log)
	testTypes := r.Group("/test-types")
	testTypes.Post("/", create, tt.Create)
	testTypes.Get("/", read, tt.List)
	testTypes.Get("/:id", read, tt.Get)
	testTypes.Patch("/:id", update, tt.Patch)
	testTypes.Delete("/:id", del, tt.Delete)

	st := controller.NewSampleTypeController(db, log)
	sampleTypes := r.Group("/sample-types")
	sampleTypes.Post("/", create, st.Create)
	sampleTypes.Get("/", read, st.List)
	sampleTypes.Get("/:id", read, st.Get)
	sampleTypes.Patch("/:id", update, st.Patch)
	sampleTypes.Delete("/:id", del, st.Delete)

	sd := controller.NewStandardController(db, log)
	standards := r.Group("/standards")
	standards.Post("/", create, sd.Create)
	standards.Get("/", read, sd.List)
	standards.Get("/:id", read, sd.Get)
	standards.Patch("/:id", update, sd.Patch)
	standards.Delete("/:id", del, sd.Delete)
}
