package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "labsuite_backend/internals/features/settings/catalog/model"
)

type StandardDTO struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	NameAr        string          `json:"nameAr"`
	Type          string          `json:"type"`
	Description   *string         `json:"description,omitempty"`
	DescriptionAr *string         `json:"descriptionAr,omitempty"`
	IsActive      bool            `json:"isActive"`
	SortOrder     int             `json:"sortOrder"`
	TestTypeIDs   []uuid.UUID     `json:"testTypeIds"`
	TestTypes     []TestTypeBrief `json:"testTypes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// StandardBrief is the nested shape used inside test types.
type StandardBrief struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
	NameAr string    `json:"nameAr"`
	Type   string    `json:"type"`
}

func FromStandard(s m.Standard) StandardDTO {
	out := StandardDTO{
		ID:            s.StandardID,
		Code:          s.StandardCode,
		Name:          s.StandardName,
		NameAr:        s.StandardNameAr,
		Type:          string(s.StandardType),
		Description:   s.StandardDescription,
		DescriptionAr: s.StandardDescriptionAr,
		IsActive:      s.StandardIsActive,
		SortOrder:     s.StandardSortOrder,
		TestTypeIDs:   make([]uuid.UUID, 0, len(s.TestTypes)),
		CreatedAt:     s.StandardCreatedAt,
		UpdatedAt:     s.StandardUpdatedAt,
	}
	for _, t := range s.TestTypes {
		out.TestTypeIDs = append(out.TestTypeIDs, t.TestTypeID)
		out.TestTypes = append(out.TestTypes, TestTypeBrief{
			ID: t.TestTypeID, Code: t.TestTypeCode, Name: t.TestTypeName, NameAr: t.TestTypeNameAr,
		})
	}
	return out
}

func FromStandards(xs []m.Standard) []StandardDTO {
	out := make([]StandardDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromStandard(it))
	}
	return out
}

type CreateStandardRequest struct {
	Code          string      `json:"code" validate:"required,max=80"`
	Name          string      `json:"name" validate:"required,max=255"`
	NameAr        string      `json:"nameAr" validate:"required,max=255"`
	Type          string      `json:"type" validate:"required,oneof=EGYPTIAN BRITISH ASTM EUROPEAN AMERICAN ISO OTHER"`
	Description   *string     `json:"description,omitempty"`
	DescriptionAr *string     `json:"descriptionAr,omitempty"`
	IsActive      *bool       `json:"isActive,omitempty"`
	SortOrder     *int        `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	TestTypeIDs   []uuid.UUID `json:"testTypeIds,omitempty"`
}

func (r *CreateStandardRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.NameAr = strings.TrimSpace(r.NameAr)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
}

func (r CreateStandardRequest) ToModel() m.Standard {
	return m.Standard{
		StandardCode:          r.Code,
		StandardName:          r.Name,
		StandardNameAr:        r.NameAr,
		StandardType:          m.StandardType(r.Type),
		StandardDescription:   r.Description,
		StandardDescriptionAr: r.DescriptionAr,
		StandardIsActive:      boolOr(r.IsActive, true),
		StandardSortOrder:     intOr(r.SortOrder, 0),
	}
}

type PatchStandardRequest struct {
	Code          *string  `json:"code,omitempty" validate:"omitempty,min=1,max=80"`
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	NameAr        *string  `json:"nameAr,omitempty" validate:"omitempty,min=1,max=255"`
	Type          *string  `json:"type,omitempty" validate:"omitempty,oneof=EGYPTIAN BRITISH ASTM EUROPEAN AMERICAN ISO OTHER"`
	Description   *string  `json:"description,omitempty"`
	DescriptionAr *string  `json:"descriptionAr,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
	SortOrder     *int     `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	// nil = keep; [] = clear; otherwise replace the whole set
	TestTypeIDs *[]uuid.UUID `json:"testTypeIds,omitempty"`
}

func (p *PatchStandardRequest) Normalize() {
	trimPtr(p.Code)
	trimPtr(p.Name)
	trimPtr(p.NameAr)
	if p.Type != nil {
		t := strings.ToUpper(strings.TrimSpace(*p.Type))
		p.Type = &t
	}
}

func (p PatchStandardRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.Code != nil {
		u["standard_code"] = *p.Code
	}
	if p.Name != nil {
		u["standard_name"] = *p.Name
	}
	if p.NameAr != nil {
		u["standard_name_ar"] = *p.NameAr
	}
	if p.Type != nil {
		u["standard_type"] = *p.Type
	}
	if p.Description != nil {
		u["standard_description"] = emptyToNil(p.Description)
	}
	if p.DescriptionAr != nil {
		u["standard_description_ar"] = emptyToNil(p.DescriptionAr)
	}
	if p.IsActive != nil {
		u["standard_is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		u["standard_sort_order"] = *p.SortOrder
	}
	return u
}
