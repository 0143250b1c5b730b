// file: internals/features/settings/catalog/dto/test_type_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "labsuite_backend/internals/features/settings/catalog/model"
)

/* =========================================================
   Response DTO
========================================================= */

type TestTypeDTO struct {
	ID            uuid.UUID        `json:"id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	NameAr        string           `json:"nameAr"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	BasePrice     *decimal.Decimal `json:"basePrice"`
	Unit          *string          `json:"unit,omitempty"`
	IsActive      bool             `json:"isActive"`
	SortOrder     int              `json:"sortOrder"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`

	SampleTypes []SampleTypeDTO `json:"sampleTypes,omitempty"`
	Standards   []StandardBrief `json:"standards,omitempty"`
}

// TestTypeBrief is the nested shape used inside standards.
type TestTypeBrief struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	NameAr string    `json:"nameAr"`
}

func FromTestType(t m.TestType) TestTypeDTO {
	out := TestTypeDTO{
		ID:            t.TestTypeID,
		Code:          t.TestTypeCode,
		Name:          t.TestTypeName,
		NameAr:        t.TestTypeNameAr,
		Description:   t.TestTypeDescription,
		DescriptionAr: t.TestTypeDescriptionAr,
		BasePrice:     nullDecimalPtr(t.TestTypeBasePrice),
		Unit:          t.TestTypeUnit,
		IsActive:      t.TestTypeIsActive,
		SortOrder:     t.TestTypeSortOrder,
		CreatedAt:     t.TestTypeCreatedAt,
		UpdatedAt:     t.TestTypeUpdatedAt,
	}
	if len(t.SampleTypes) > 0 {
		out.SampleTypes = FromSampleTypes(t.SampleTypes)
	}
	if len(t.Standards) > 0 {
		out.Standards = make([]StandardBrief, 0, len(t.Standards))
		for _, s := range t.Standards {
			out.Standards = append(out.Standards, StandardBrief{
				ID: s.StandardID, Code: s.StandardCode, Name: s.StandardName, NameAr: s.StandardNameAr, Type: string(s.StandardType),
			})
		}
	}
	return out
}

func FromTestTypes(xs []m.TestType) []TestTypeDTO {
	out := make([]TestTypeDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromTestType(it))
	}
	return out
}

/* =========================================================
   Create Request
========================================================= */

type CreateTestTypeRequest struct {
	Code          string           `json:"code" validate:"required,max=50"`
	Name          string           `json:"name" validate:"required,max=200"`
	NameAr        string           `json:"nameAr" validate:"required,max=200"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	BasePrice     *decimal.Decimal `json:"basePrice,omitempty"`
	Unit          *string          `json:"unit,omitempty" validate:"omitempty,max=50"`
	IsActive      *bool            `json:"isActive,omitempty"` // default true
	SortOrder     *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (r *CreateTestTypeRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.NameAr = strings.TrimSpace(r.NameAr)
}

func (r CreateTestTypeRequest) ToModel() m.TestType {
	return m.TestType{
		TestTypeCode:          r.Code,
		TestTypeName:          r.Name,
		TestTypeNameAr:        r.NameAr,
		TestTypeDescription:   r.Description,
		TestTypeDescriptionAr: r.DescriptionAr,
		TestTypeBasePrice:     toNullDecimal(r.BasePrice),
		TestTypeUnit:          r.Unit,
		TestTypeIsActive:      boolOr(r.IsActive, true),
		TestTypeSortOrder:     intOr(r.SortOrder, 0),
	}
}

/* =========================================================
   Patch Request (tri-state via pointer)
========================================================= */

type PatchTestTypeRequest struct {
	Code          *string          `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameAr        *string          `json:"nameAr,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	BasePrice     *decimal.Decimal `json:"basePrice,omitempty"`
	Unit          *string          `json:"unit,omitempty" validate:"omitempty,max=50"`
	IsActive      *bool            `json:"isActive,omitempty"`
	SortOrder     *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (p *PatchTestTypeRequest) Normalize() {
	trimPtr(p.Code)
	trimPtr(p.Name)
	trimPtr(p.NameAr)
}

// Updates builds the column map for a partial update; "" clears optional text.
func (p PatchTestTypeRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.Code != nil {
		u["test_type_code"] = *p.Code
	}
	if p.Name != nil {
		u["test_type_name"] = *p.Name
	}
	if p.NameAr != nil {
		u["test_type_name_ar"] = *p.NameAr
	}
	if p.Description != nil {
		u["test_type_description"] = emptyToNil(p.Description)
	}
	if p.DescriptionAr != nil {
		u["test_type_description_ar"] = emptyToNil(p.DescriptionAr)
	}
	if p.BasePrice != nil {
		u["test_type_base_price"] = *p.BasePrice
	}
	if p.Unit != nil {
		u["test_type_unit"] = emptyToNil(p.Unit)
	}
	if p.IsActive != nil {
		u["test_type_is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		u["test_type_sort_order"] = *p.SortOrder
	}
	return u
}
