// file: internals/features/settings/catalog/model/test_type_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TestType struct {
	TestTypeID uuid.UUID `json:"test_type_id" gorm:"column:test_type_id;type:uuid;primaryKey"`

	TestTypeCode          string  `json:"test_type_code" gorm:"column:test_type_code;type:varchar(50);not null;uniqueIndex:uq_test_types_code"`
	TestTypeName          string  `json:"test_type_name" gorm:"column:test_type_name;type:varchar(200);not null"`
	TestTypeNameAr        string  `json:"test_type_name_ar" gorm:"column:test_type_name_ar;type:varchar(200);not null"`
	TestTypeDescription   *string `json:"test_type_description,omitempty" gorm:"column:test_type_description;type:text"`
	TestTypeDescriptionAr *string `json:"test_type_description_ar,omitempty" gorm:"column:test_type_description_ar;type:text"`

	// NULLABLE: priced per sample type when empty
	TestTypeBasePrice decimal.NullDecimal `json:"test_type_base_price" gorm:"column:test_type_base_price;type:numeric(12,2)"`
	TestTypeUnit      *string             `json:"test_type_unit,omitempty" gorm:"column:test_type_unit;type:varchar(50)"`

	TestTypeIsActive  bool `json:"test_type_is_active" gorm:"column:test_type_is_active;not null"`
	TestTypeSortOrder int  `json:"test_type_sort_order" gorm:"column:test_type_sort_order;not null"`

	TestTypeCreatedAt time.Time `json:"test_type_created_at" gorm:"column:test_type_created_at;autoCreateTime"`
	TestTypeUpdatedAt time.Time `json:"test_type_updated_at" gorm:"column:test_type_updated_at;autoUpdateTime"`

	SampleTypes []SampleType `json:"sample_types,omitempty" gorm:"foreignKey:SampleTypeTestTypeID;references:TestTypeID"`
	Standards   []Standard   `json:"standards,omitempty" gorm:"many2many:test_type_standards;joinForeignKey:TestTypeID;joinReferences:StandardID"`
}

func (TestType) TableName() string { return "test_types" }

func (t *TestType) BeforeCreate(tx *gorm.DB) error {
	if t.TestTypeID == uuid.Nil {
		t.TestTypeID = uuid.New()
	}
	return nil
}
