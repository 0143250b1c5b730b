package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

type StandardType string

const (
	StandardTypeEgyptian StandardType = "EGYPTIAN"
	StandardTypeBritish  StandardType = "BRITISH"
	StandardTypeASTM     StandardType = "ASTM"
	StandardTypeEuropean StandardType = "EUROPEAN"
	StandardTypeAmerican StandardType = "AMERICAN"
	StandardTypeISO      StandardType = "ISO"
	StandardTypeOther    StandardType = "OTHER"
)

/* =========================
   Model
   ========================= */

type Standard struct {
	StandardID uuid.UUID `json:"standard_id" gorm:"column:standard_id;type:uuid;primaryKey"`

	StandardCode          string       `json:"standard_code" gorm:"column:standard_code;type:varchar(80);not null;uniqueIndex:uq_standards_code"`
	StandardName          string       `json:"standard_name" gorm:"column:standard_name;type:varchar(255);not null"`
	StandardNameAr        string       `json:"standard_name_ar" gorm:"column:standard_name_ar;type:varchar(255);not null"`
	StandardType          StandardType `json:"standard_type" gorm:"column:standard_type;type:varchar(20);not null"`
	StandardDescription   *string      `json:"standard_description,omitempty" gorm:"column:standard_description;type:text"`
	StandardDescriptionAr *string      `json:"standard_description_ar,omitempty" gorm:"column:standard_description_ar;type:text"`

	StandardIsActive  bool `json:"standard_is_active" gorm:"column:standard_is_active;not null"`
	StandardSortOrder int  `json:"standard_sort_order" gorm:"column:standard_sort_order;not null"`

	StandardCreatedAt time.Time `json:"standard_created_at" gorm:"column:standard_created_at;autoCreateTime"`
	StandardUpdatedAt time.Time `json:"standard_updated_at" gorm:"column:standard_updated_at;autoUpdateTime"`

	TestTypes []TestType `json:"test_types,omitempty" gorm:"many2many:test_type_standards;joinForeignKey:StandardID;joinReferences:TestTypeID"`
}

func (Standard) TableName() string { return "standards" }

func (s *Standard) BeforeCreate(tx *gorm.DB) error {
	if s.StandardID == uuid.Nil {
		s.StandardID = uuid.New()
	}
	return nil
}
