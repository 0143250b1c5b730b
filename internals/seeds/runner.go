package seeds

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labsuite_backend/internals/seeds/settings"
)

// RunAllSeeds runs every seeder in order; it is called when RUN_SEEDS=true.
func RunAllSeeds(db *gorm.DB, log *zap.Logger) error {
	//* Settings (system lookups + system settings)
	if _, err := settings.Seed(db, log); err != nil {
		return err
	}
	return nil
}
