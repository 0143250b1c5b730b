package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "labsuite_backend/internals/features/settings/pricing/model"
)

type MixerTypeDTO struct {
	ID            uuid.UUID        `json:"id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	NameAr        string           `json:"nameAr"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	Capacity      *decimal.Decimal `json:"capacity"`
	PricePerBatch *decimal.Decimal `json:"pricePerBatch"`
	IsActive      bool             `json:"isActive"`
	SortOrder     int              `json:"sortOrder"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func FromMixerType(x m.MixerType) MixerTypeDTO {
	return MixerTypeDTO{
		ID:            x.MixerTypeID,
		Code:          x.MixerTypeCode,
		Name:          x.MixerTypeName,
		NameAr:        x.MixerTypeNameAr,
		Description:   x.MixerTypeDescription,
		DescriptionAr: x.MixerTypeDescriptionAr,
		Capacity:      nullDecimalPtr(x.MixerTypeCapacity),
		PricePerBatch: nullDecimalPtr(x.MixerTypePricePerBatch),
		IsActive:      x.MixerTypeIsActive,
		SortOrder:     x.MixerTypeSortOrder,
		CreatedAt:     x.MixerTypeCreatedAt,
		UpdatedAt:     x.MixerTypeUpdatedAt,
	}
}

func FromMixerTypes(xs []m.MixerType) []MixerTypeDTO {
	out := make([]MixerTypeDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromMixerType(it))
	}
	return out
}

type CreateMixerTypeRequest struct {
	Code          string           `json:"code" validate:"required,max=50"`
	Name          string           `json:"name" validate:"required,max=200"`
	NameAr        string           `json:"nameAr" validate:"required,max=200"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	Capacity      *decimal.Decimal `json:"capacity,omitempty"`
	PricePerBatch *decimal.Decimal `json:"pricePerBatch,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
	SortOrder     *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (r *CreateMixerTypeRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.NameAr = strings.TrimSpace(r.NameAr)
}

func (r CreateMixerTypeRequest) ToModel() m.MixerType {
	return m.MixerType{
		MixerTypeCode:          r.Code,
		MixerTypeName:          r.Name,
		MixerTypeNameAr:        r.NameAr,
		MixerTypeDescription:   r.Description,
		MixerTypeDescriptionAr: r.DescriptionAr,
		MixerTypeCapacity:      toNullDecimal(r.Capacity),
		MixerTypePricePerBatch: toNullDecimal(r.PricePerBatch),
		MixerTypeIsActive:      boolOr(r.IsActive, true),
		MixerTypeSortOrder:     intOr(r.SortOrder, 0),
	}
}

type PatchMixerTypeRequest struct {
	Code          *string          `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameAr        *string          `json:"nameAr,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	Capacity      *decimal.Decimal `json:"capacity,omitempty"`
	PricePerBatch *decimal.Decimal `json:"pricePerBatch,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
	SortOrder     *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (p *PatchMixerTypeRequest) Normalize() {
	trimPtr(p.Code)
	trimPtr(p.Name)
	trimPtr(p.NameAr)
}

func (p PatchMixerTypeRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.Code != nil {
		u["mixer_type_code"] = *p.Code
	}
	if p.Name != nil {
		u["mixer_type_name"] = *p.Name
	}
	if p.NameAr != nil {
		u["mixer_type_name_ar"] = *p.NameAr
	}
	if p.Description != nil {
		u["mixer_type_description"] = emptyToNil(p.Description)
	}
	if p.DescriptionAr != nil {
		u["mixer_type_description_ar"] = emptyToNil(p.DescriptionAr)
	}
	if p.Capacity != nil {
		u["mixer_type_capacity"] = *p.Capacity
	}
	if p.PricePerBatch != nil {
		u["mixer_type_price_per_batch"] = *p.PricePerBatch
	}
	if p.IsActive != nil {
		u["mixer_type_is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		u["mixer_type_sort_order"] = *p.SortOrder
	}
	return u
}
