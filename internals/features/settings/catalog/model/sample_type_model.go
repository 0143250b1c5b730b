package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SampleType struct {
	SampleTypeID         uuid.UUID `json:"sample_type_id" gorm:"column:sample_type_id;type:uuid;primaryKey"`
	SampleTypeTestTypeID uuid.UUID `json:"sample_type_test_type_id" gorm:"column:sample_type_test_type_id;type:uuid;not null;index:idx_sample_types_test_type"`

	SampleTypeCode   string  `json:"sample_type_code" gorm:"column:sample_type_code;type:varchar(50);not null;uniqueIndex:uq_sample_types_code"`
	SampleTypeName   string  `json:"sample_type_name" gorm:"column:sample_type_name;type:varchar(200);not null"`
	SampleTypeNameAr string  `json:"sample_type_name_ar" gorm:"column:sample_type_name_ar;type:varchar(200);not null"`
	SampleTypeUnit   *string `json:"sample_type_unit,omitempty" gorm:"column:sample_type_unit;type:varchar(50)"`

	SampleTypePricePerUnit decimal.NullDecimal `json:"sample_type_price_per_unit" gorm:"column:sample_type_price_per_unit;type:numeric(12,2)"`

	SampleTypeIsActive  bool `json:"sample_type_is_active" gorm:"column:sample_type_is_active;not null"`
	SampleTypeSortOrder int  `json:"sample_type_sort_order" gorm:"column:sample_type_sort_order;not null"`

	SampleTypeCreatedAt time.Time `json:"sample_type_created_at" gorm:"column:sample_type_created_at;autoCreateTime"`
	SampleTypeUpdatedAt time.Time `json:"sample_type_updated_at" gorm:"column:sample_type_updated_at;autoUpdateTime"`

	TestType *TestType `json:"test_type,omitempty" gorm:"foreignKey:SampleTypeTestTypeID;references:TestTypeID"`
}

func (SampleType) TableName() string { return "sample_types" }

func (s *SampleType) BeforeCreate(tx *gorm.DB) error {
	if s.SampleTypeID == uuid.Nil {
		s.SampleTypeID = uuid.New()
	}
	return nil
}
