package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MixerType struct {
	MixerTypeID uuid.UUID `json:"mixer_type_id" gorm:"column:mixer_type_id;type:uuid;primaryKey"`

	MixerTypeCode          string  `json:"mixer_type_code" gorm:"column:mixer_type_code;type:varchar(50);not null;uniqueIndex:uq_mixer_types_code"`
	MixerTypeName          string  `json:"mixer_type_name" gorm:"column:mixer_type_name;type:varchar(200);not null"`
	MixerTypeNameAr        string  `json:"mixer_type_name_ar" gorm:"column:mixer_type_name_ar;type:varchar(200);not null"`
	MixerTypeDescription   *string `json:"mixer_type_description,omitempty" gorm:"column:mixer_type_description;type:text"`
	MixerTypeDescriptionAr *string `json:"mixer_type_description_ar,omitempty" gorm:"column:mixer_type_description_ar;type:text"`

	// m³ per batch
	MixerTypeCapacity      decimal.NullDecimal `json:"mixer_type_capacity" gorm:"column:mixer_type_capacity;type:numeric(10,2)"`
	MixerTypePricePerBatch decimal.NullDecimal `json:"mixer_type_price_per_batch" gorm:"column:mixer_type_price_per_batch;type:numeric(12,2)"`

	MixerTypeIsActive  bool `json:"mixer_type_is_active" gorm:"column:mixer_type_is_active;not null"`
	MixerTypeSortOrder int  `json:"mixer_type_sort_order" gorm:"column:mixer_type_sort_order;not null"`

	MixerTypeCreatedAt time.Time `json:"mixer_type_created_at" gorm:"column:mixer_type_created_at;autoCreateTime"`
	MixerTypeUpdatedAt time.Time `json:"mixer_type_updated_at" gorm:"column:mixer_type_updated_at;autoUpdateTime"`
}

func (MixerType) TableName() string { return "mixer_types" }

func (t *MixerType) BeforeCreate(tx *gorm.DB) error {
	if t.MixerTypeID == uuid.Nil {
		t.MixerTypeID = uuid.New()
	}
	return nil
}
