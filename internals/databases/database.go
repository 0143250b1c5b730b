package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"labsuite_backend/internals/configs"
	catalog "labsuite_backend/internals/features/settings/catalog/model"
	lookups "labsuite_backend/internals/features/settings/lookups/model"
	pricing "labsuite_backend/internals/features/settings/pricing/model"
	settings "labsuite_backend/internals/features/settings/system_settings/model"
)

var DB *gorm.DB

// ConnectDB opens PostgreSQL through pgx and stores the handle in DB.
func ConnectDB(cfg configs.DBConfig, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("connecting to PostgreSQL", zap.String("host", cfg.Host), zap.String("db", cfg.Name))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	DB = db
	log.Info("DB connected")
	return db, nil
}

func TunePool(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries fills the pool in the background once the server is up.
func WarmUpQueries(db *gorm.DB, log *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			log.Warn("warm-up ping failed", zap.Error(err))
			return
		}
		if err := db.WithContext(ctx).Exec("SELECT 1").Error; err != nil {
			log.Warn("warm-up query failed", zap.Error(err))
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Models lists every table owned by the settings back office.
func Models() []any {
	return []any{
		&catalog.TestType{},
		&catalog.SampleType{},
		&catalog.Standard{},
		&pricing.PriceList{},
		&pricing.PriceListItem{},
		&pricing.DistanceRate{},
		&pricing.MixerType{},
		&lookups.LookupCategory{},
		&lookups.LookupItem{},
		&settings.SystemSetting{},
	}
}

// postgresConstraints back the service-level rules with the database.
// Partial unique indexes allow one default row per scope; the exclusion
// constraint rejects overlapping active distance bands.
var postgresConstraints = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_price_lists_default_per_category
		ON price_lists (price_list_category) WHERE price_list_is_default`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_lookup_items_default_per_category
		ON lookup_items (lookup_item_category_id) WHERE lookup_item_is_default`,
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'ex_distance_rates_active_range') THEN
			ALTER TABLE distance_rates ADD CONSTRAINT ex_distance_rates_active_range
				EXCLUDE USING gist (numrange(distance_rate_from_km, distance_rate_to_km, '[)') WITH &&)
				WHERE (distance_rate_is_active);
		END IF;
	END $$`,
}

// Migrate creates or updates the schema. Constraint DDL runs on PostgreSQL only.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		log.Info("skipping PostgreSQL constraints", zap.String("dialect", db.Dialector.Name()))
		return nil
	}
	for _, stmt := range postgresConstraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate constraint: %w", err)
		}
	}
	log.Info("schema migrated", zap.Int("models", len(Models())))
	return nil
}
