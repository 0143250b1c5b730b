package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	catalogRoute "labsuite_backend/internals/features/settings/catalog/route"
	lookupRoute "labsuite_backend/internals/features/settings/lookups/route"
	pricingRoute "labsuite_backend/internals/features/settings/pricing/route"
	systemRoute "labsuite_backend/internals/features/settings/system_settings/route"
)

// SettingsPublicRoutes: no token
func SettingsPublicRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	systemRoute.SystemSettingPublicRoutes(r, db, log)
}

// SettingsAdminRoutes: behind AuthJWT, each route guarded by can(permission)
func SettingsAdminRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger, can func(string) fiber.Handler) {
	catalogRoute.CatalogRoutes(r, db, log, can)
	pricingRoute.PricingRoutes(r, db, log, can)
	lookupRoute.LookupRoutes(r, db, log, can)
	systemRoute.SystemSettingRoutes(r, db, log, can)
}
