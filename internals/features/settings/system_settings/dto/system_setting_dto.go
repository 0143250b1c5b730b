package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "labsuite_backend/internals/features/settings/system_settings/model"
)

type SystemSettingDTO struct {
	ID             uuid.UUID `json:"id"`
	Key            string    `json:"key"`
	Value          string    `json:"value"`
	Type           string    `json:"type"`
	Category       string    `json:"category"`
	Label          *string   `json:"label,omitempty"`
	LabelAr        *string   `json:"labelAr,omitempty"`
	Description    *string   `json:"description,omitempty"`
	DescriptionAr  *string   `json:"descriptionAr,omitempty"`
	ValidationRule *string   `json:"validationRule,omitempty"`
	IsSystem       bool      `json:"isSystem"`
	IsPublic       bool      `json:"isPublic"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromSystemSetting(s m.SystemSetting) SystemSettingDTO {
	return SystemSettingDTO{
		ID:             s.SystemSettingID,
		Key:            s.SystemSettingKey,
		Value:          s.SystemSettingValue,
		Type:           string(s.SystemSettingType),
		Category:       s.SystemSettingCategory,
		Label:          s.SystemSettingLabel,
		LabelAr:        s.SystemSettingLabelAr,
		Description:    s.SystemSettingDescription,
		DescriptionAr:  s.SystemSettingDescriptionAr,
		ValidationRule: s.SystemSettingValidationRule,
		IsSystem:       s.SystemSettingIsSystem,
		IsPublic:       s.SystemSettingIsPublic,
		CreatedAt:      s.SystemSettingCreatedAt,
		UpdatedAt:      s.SystemSettingUpdatedAt,
	}
}

func FromSystemSettings(xs []m.SystemSetting) []SystemSettingDTO {
	out := make([]SystemSettingDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromSystemSetting(it))
	}
	return out
}

// SettingValueDTO is the coerced read of a single key.
type SettingValueDTO struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

/* =========================================================
   Requests
========================================================= */

type CreateSystemSettingRequest struct {
	Key            string  `json:"key" validate:"required,max=120"`
	Value          *string `json:"value" validate:"required"`
	Type           string  `json:"type" validate:"required,oneof=STRING NUMBER BOOLEAN JSON DATE"`
	Category       string  `json:"category,omitempty" validate:"omitempty,max=60"`
	Label          *string `json:"label,omitempty" validate:"omitempty,max=200"`
	LabelAr        *string `json:"labelAr,omitempty" validate:"omitempty,max=200"`
	Description    *string `json:"description,omitempty"`
	DescriptionAr  *string `json:"descriptionAr,omitempty"`
	ValidationRule *string `json:"validationRule,omitempty" validate:"omitempty,max=500"`
	IsSystem       *bool   `json:"isSystem,omitempty"`
	IsPublic       *bool   `json:"isPublic,omitempty"`
}

func (r *CreateSystemSettingRequest) Normalize() {
	r.Key = strings.TrimSpace(r.Key)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Category = strings.TrimSpace(r.Category)
	if r.ValidationRule != nil && strings.TrimSpace(*r.ValidationRule) == "" {
		r.ValidationRule = nil
	}
}

func (r CreateSystemSettingRequest) ToModel() m.SystemSetting {
	cat := r.Category
	if cat == "" {
		cat = "general"
	}
	s := m.SystemSetting{
		SystemSettingKey:            r.Key,
		SystemSettingType:           m.SettingType(r.Type),
		SystemSettingCategory:       cat,
		SystemSettingLabel:          r.Label,
		SystemSettingLabelAr:        r.LabelAr,
		SystemSettingDescription:    r.Description,
		SystemSettingDescriptionAr:  r.DescriptionAr,
		SystemSettingValidationRule: r.ValidationRule,
		SystemSettingIsSystem:       r.IsSystem != nil && *r.IsSystem,
		SystemSettingIsPublic:       r.IsPublic != nil && *r.IsPublic,
	}
	if r.Value != nil {
		s.SystemSettingValue = *r.Value
	}
	return s
}

// key, type and isSystem are fixed after creation.
type PatchSystemSettingRequest struct {
	Value          *string `json:"value,omitempty"`
	Category       *string `json:"category,omitempty" validate:"omitempty,min=1,max=60"`
	Label          *string `json:"label,omitempty" validate:"omitempty,max=200"`
	LabelAr        *string `json:"labelAr,omitempty" validate:"omitempty,max=200"`
	Description    *string `json:"description,omitempty"`
	DescriptionAr  *string `json:"descriptionAr,omitempty"`
	ValidationRule *string `json:"validationRule,omitempty" validate:"omitempty,max=500"`
	IsPublic       *bool   `json:"isPublic,omitempty"`
}

func (p *PatchSystemSettingRequest) Normalize() {
	if p.Category != nil {
		v := strings.TrimSpace(*p.Category)
		p.Category = &v
	}
}

func (p PatchSystemSettingRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.Value != nil {
		u["system_setting_value"] = *p.Value
	}
	if p.Category != nil {
		u["system_setting_category"] = *p.Category
	}
	if p.Label != nil {
		u["system_setting_label"] = emptyToNil(p.Label)
	}
	if p.LabelAr != nil {
		u["system_setting_label_ar"] = emptyToNil(p.LabelAr)
	}
	if p.Description != nil {
		u["system_setting_description"] = emptyToNil(p.Description)
	}
	if p.DescriptionAr != nil {
		u["system_setting_description_ar"] = emptyToNil(p.DescriptionAr)
	}
	if p.ValidationRule != nil {
		// "" removes the rule
		u["system_setting_validation_rule"] = emptyToNil(p.ValidationRule)
	}
	if p.IsPublic != nil {
		u["system_setting_is_public"] = *p.IsPublic
	}
	return u
}

type BulkSettingItem struct {
	Key   string  `json:"key" validate:"required"`
	Value *string `json:"value" validate:"required"`
}

type BulkUpdateRequest struct {
	Settings []BulkSettingItem `json:"settings" validate:"required,min=1,dive"`
}

func (r *BulkUpdateRequest) Normalize() {
	for i := range r.Settings {
		r.Settings[i].Key = strings.TrimSpace(r.Settings[i].Key)
	}
}

// BulkResult is the outcome of one key in a bulk update.
type BulkResult struct {
	Key     string            `json:"key"`
	Success bool              `json:"success"`
	Data    *SystemSettingDTO `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func emptyToNil(p *string) any {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return strings.TrimSpace(*p)
}
