package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "labsuite_backend/internals/features/settings/catalog/model"
)

type SampleTypeDTO struct {
	ID           uuid.UUID        `json:"id"`
	TestTypeID   uuid.UUID        `json:"testTypeId"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	NameAr       string           `json:"nameAr"`
	Unit         *string          `json:"unit,omitempty"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit"`
	IsActive     bool             `json:"isActive"`
	SortOrder    int              `json:"sortOrder"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`

	TestType *TestTypeBrief `json:"testType,omitempty"`
}

func FromSampleType(s m.SampleType) SampleTypeDTO {
	out := SampleTypeDTO{
		ID:           s.SampleTypeID,
		TestTypeID:   s.SampleTypeTestTypeID,
		Code:         s.SampleTypeCode,
		Name:         s.SampleTypeName,
		NameAr:       s.SampleTypeNameAr,
		Unit:         s.SampleTypeUnit,
		PricePerUnit: nullDecimalPtr(s.SampleTypePricePerUnit),
		IsActive:     s.SampleTypeIsActive,
		SortOrder:    s.SampleTypeSortOrder,
		CreatedAt:    s.SampleTypeCreatedAt,
		UpdatedAt:    s.SampleTypeUpdatedAt,
	}
	if s.TestType != nil {
		out.TestType = &TestTypeBrief{
			ID:     s.TestType.TestTypeID,
			Code:   s.TestType.TestTypeCode,
			Name:   s.TestType.TestTypeName,
			NameAr: s.TestType.TestTypeNameAr,
		}
	}
	return out
}

func FromSampleTypes(xs []m.SampleType) []SampleTypeDTO {
	out := make([]SampleTypeDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromSampleType(it))
	}
	return out
}

type CreateSampleTypeRequest struct {
	TestTypeID   uuid.UUID        `json:"testTypeId" validate:"required"`
	Code         string           `json:"code" validate:"required,max=50"`
	Name         string           `json:"name" validate:"required,max=200"`
	NameAr       string           `json:"nameAr" validate:"required,max=200"`
	Unit         *string          `json:"unit,omitempty" validate:"omitempty,max=50"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
	SortOrder    *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (r *CreateSampleTypeRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.NameAr = strings.TrimSpace(r.NameAr)
}

func (r CreateSampleTypeRequest) ToModel() m.SampleType {
	return m.SampleType{
		SampleTypeTestTypeID:   r.TestTypeID,
		SampleTypeCode:         r.Code,
		SampleTypeName:         r.Name,
		SampleTypeNameAr:       r.NameAr,
		SampleTypeUnit:         r.Unit,
		SampleTypePricePerUnit: toNullDecimal(r.PricePerUnit),
		SampleTypeIsActive:     boolOr(r.IsActive, true),
		SampleTypeSortOrder:    intOr(r.SortOrder, 0),
	}
}

type PatchSampleTypeRequest struct {
	TestTypeID   *uuid.UUID       `json:"testTypeId,omitempty"`
	Code         *string          `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameAr       *string          `json:"nameAr,omitempty" validate:"omitempty,min=1,max=200"`
	Unit         *string          `json:"unit,omitempty" validate:"omitempty,max=50"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
	SortOrder    *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (p *PatchSampleTypeRequest) Normalize() {
	trimPtr(p.Code)
	trimPtr(p.Name)
	trimPtr(p.NameAr)
}

func (p PatchSampleTypeRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.TestTypeID != nil {
		u["sample_type_test_type_id"] = *p.TestTypeID
	}
	if p.Code != nil {
		u["sample_type_code"] = *p.Code
	}
	if p.Name != nil {
		u["sample_type_name"] = *p.Name
	}
	if p.NameAr != nil {
		u["sample_type_name_ar"] = *p.NameAr
	}
	if p.Unit != nil {
		u["sample_type_unit"] = emptyToNil(p.Unit)
	}
	if p.PricePerUnit != nil {
		u["sample_type_price_per_unit"] = *p.PricePerUnit
	}
	if p.IsActive != nil {
		u["sample_type_is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		u["sample_type_sort_order"] = *p.SortOrder
	}
	return u
}
