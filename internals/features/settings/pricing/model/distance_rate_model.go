package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DistanceRate is a transport band [from_km, to_km).
// Active bands never overlap; on PostgreSQL an exclusion constraint backs this.
type DistanceRate struct {
	DistanceRateID uuid.UUID `json:"distance_rate_id" gorm:"column:distance_rate_id;type:uuid;primaryKey"`

	DistanceRateFromKm float64 `json:"distance_rate_from_km" gorm:"column:distance_rate_from_km;type:numeric(10,2);not null"`
	DistanceRateToKm   float64 `json:"distance_rate_to_km" gorm:"column:distance_rate_to_km;type:numeric(10,2);not null"`

	DistanceRateRate      decimal.Decimal     `json:"distance_rate_rate" gorm:"column:distance_rate_rate;type:numeric(12,2);not null"`
	DistanceRateRatePerKm decimal.NullDecimal `json:"distance_rate_rate_per_km" gorm:"column:distance_rate_rate_per_km;type:numeric(12,2)"`

	DistanceRateDescription   *string `json:"distance_rate_description,omitempty" gorm:"column:distance_rate_description;type:text"`
	DistanceRateDescriptionAr *string `json:"distance_rate_description_ar,omitempty" gorm:"column:distance_rate_description_ar;type:text"`

	DistanceRateIsActive bool `json:"distance_rate_is_active" gorm:"column:distance_rate_is_active;not null;index:idx_distance_rates_active"`

	DistanceRateCreatedAt time.Time `json:"distance_rate_created_at" gorm:"column:distance_rate_created_at;autoCreateTime"`
	DistanceRateUpdatedAt time.Time `json:"distance_rate_updated_at" gorm:"column:distance_rate_updated_at;autoUpdateTime"`
}

func (DistanceRate) TableName() string { return "distance_rates" }

func (d *DistanceRate) BeforeCreate(tx *gorm.DB) error {
	if d.DistanceRateID == uuid.Nil {
		d.DistanceRateID = uuid.New()
	}
	return nil
}
