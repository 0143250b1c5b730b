package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

type SettingType string

const (
	SettingTypeString  SettingType = "STRING"
	SettingTypeNumber  SettingType = "NUMBER"
	SettingTypeBoolean SettingType = "BOOLEAN"
	SettingTypeJSON    SettingType = "JSON"
	SettingTypeDate    SettingType = "DATE"
)

/* =========================
   Model
   ========================= */

// SystemSetting stores every value as a string; Type tags how it is read back.
type SystemSetting struct {
	SystemSettingID uuid.UUID `json:"system_setting_id" gorm:"column:system_setting_id;type:uuid;primaryKey"`

	SystemSettingKey      string      `json:"system_setting_key" gorm:"column:system_setting_key;type:varchar(120);not null;uniqueIndex:uq_system_settings_key"`
	SystemSettingValue    string      `json:"system_setting_value" gorm:"column:system_setting_value;type:text;not null"`
	SystemSettingType     SettingType `json:"system_setting_type" gorm:"column:system_setting_type;type:varchar(10);not null"`
	SystemSettingCategory string      `json:"system_setting_category" gorm:"column:system_setting_category;type:varchar(60);not null;index:idx_system_settings_category"`

	SystemSettingLabel         *string `json:"system_setting_label,omitempty" gorm:"column:system_setting_label;type:varchar(200)"`
	SystemSettingLabelAr       *string `json:"system_setting_label_ar,omitempty" gorm:"column:system_setting_label_ar;type:varchar(200)"`
	SystemSettingDescription   *string `json:"system_setting_description,omitempty" gorm:"column:system_setting_description;type:text"`
	SystemSettingDescriptionAr *string `json:"system_setting_description_ar,omitempty" gorm:"column:system_setting_description_ar;type:text"`

	// RE2 pattern the value must match on update
	SystemSettingValidationRule *string `json:"system_setting_validation_rule,omitempty" gorm:"column:system_setting_validation_rule;type:varchar(500)"`

	SystemSettingIsSystem bool `json:"system_setting_is_system" gorm:"column:system_setting_is_system;not null"`
	SystemSettingIsPublic bool `json:"system_setting_is_public" gorm:"column:system_setting_is_public;not null;index:idx_system_settings_public"`

	SystemSettingCreatedAt time.Time `json:"system_setting_created_at" gorm:"column:system_setting_created_at;autoCreateTime"`
	SystemSettingUpdatedAt time.Time `json:"system_setting_updated_at" gorm:"column:system_setting_updated_at;autoUpdateTime"`
}

func (SystemSetting) TableName() string { return "system_settings" }

func (s *SystemSetting) BeforeCreate(tx *gorm.DB) error {
	if s.SystemSettingID == uuid.Nil {
		s.SystemSettingID = uuid.New()
	}
	return nil
}

/* =========================
   Typed reads
   ========================= */

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func (s SystemSetting) coerceErr(err error) error {
	return fmt.Errorf("setting %s: invalid %s value %q: %w", s.SystemSettingKey, s.SystemSettingType, s.SystemSettingValue, err)
}

func (s SystemSetting) AsNumber() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s.SystemSettingValue), 64)
	if err != nil {
		return 0, s.coerceErr(err)
	}
	return f, nil
}

// AsBool is true only for the exact string "true".
func (s SystemSetting) AsBool() bool {
	return s.SystemSettingValue == "true"
}

func (s SystemSetting) AsJSON() (any, error) {
	var out any
	if err := sonic.UnmarshalString(s.SystemSettingValue, &out); err != nil {
		return nil, s.coerceErr(err)
	}
	return out, nil
}

func (s SystemSetting) AsDate() (time.Time, error) {
	v := strings.TrimSpace(s.SystemSettingValue)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, s.coerceErr(lastErr)
}

// Typed returns the value converted according to Type. Unknown types pass through as strings.
func (s SystemSetting) Typed() (any, error) {
	switch s.SystemSettingType {
	case SettingTypeNumber:
		return s.AsNumber()
	case SettingTypeBoolean:
		return s.AsBool(), nil
	case SettingTypeJSON:
		return s.AsJSON()
	case SettingTypeDate:
		return s.AsDate()
	default:
		return s.SystemSettingValue, nil
	}
}
