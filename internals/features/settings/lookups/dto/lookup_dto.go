package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "labsuite_backend/internals/features/settings/lookups/model"
)

/* =========================================================
   Response
========================================================= */

type LookupCategoryDTO struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	NameAr        string          `json:"nameAr"`
	Description   *string         `json:"description,omitempty"`
	DescriptionAr *string         `json:"descriptionAr,omitempty"`
	IsSystem      bool            `json:"isSystem"`
	IsActive      bool            `json:"isActive"`
	SortOrder     int             `json:"sortOrder"`
	Items         []LookupItemDTO `json:"items,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type LookupItemDTO struct {
	ID         uuid.UUID      `json:"id"`
	CategoryID uuid.UUID      `json:"categoryId"`
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	NameAr     string         `json:"nameAr"`
	Value      *string        `json:"value,omitempty"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	IsDefault  bool           `json:"isDefault"`
	IsActive   bool           `json:"isActive"`
	SortOrder  int            `json:"sortOrder"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func FromLookupCategory(c m.LookupCategory) LookupCategoryDTO {
	out := LookupCategoryDTO{
		ID:            c.LookupCategoryID,
		Code:          c.LookupCategoryCode,
		Name:          c.LookupCategoryName,
		NameAr:        c.LookupCategoryNameAr,
		Description:   c.LookupCategoryDescription,
		DescriptionAr: c.LookupCategoryDescriptionAr,
		IsSystem:      c.LookupCategoryIsSystem,
		IsActive:      c.LookupCategoryIsActive,
		SortOrder:     c.LookupCategorySortOrder,
		CreatedAt:     c.LookupCategoryCreatedAt,
		UpdatedAt:     c.LookupCategoryUpdatedAt,
	}
	if c.Items != nil {
		out.Items = FromLookupItems(c.Items)
	}
	return out
}

func FromLookupCategories(xs []m.LookupCategory) []LookupCategoryDTO {
	out := make([]LookupCategoryDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromLookupCategory(it))
	}
	return out
}

func FromLookupItem(i m.LookupItem) LookupItemDTO {
	return LookupItemDTO{
		ID:         i.LookupItemID,
		CategoryID: i.LookupItemCategoryID,
		Code:       i.LookupItemCode,
		Name:       i.LookupItemName,
		NameAr:     i.LookupItemNameAr,
		Value:      i.LookupItemValue,
		Metadata:   i.LookupItemMetadata,
		IsDefault:  i.LookupItemIsDefault,
		IsActive:   i.LookupItemIsActive,
		SortOrder:  i.LookupItemSortOrder,
		CreatedAt:  i.LookupItemCreatedAt,
		UpdatedAt:  i.LookupItemUpdatedAt,
	}
}

func FromLookupItems(xs []m.LookupItem) []LookupItemDTO {
	out := make([]LookupItemDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromLookupItem(it))
	}
	return out
}

/* =========================================================
   Category requests
========================================================= */

type CreateCategoryRequest struct {
	Code          string  `json:"code" validate:"required,max=80"`
	Name          string  `json:"name" validate:"required,max=200"`
	NameAr        string  `json:"nameAr" validate:"required,max=200"`
	Description   *string `json:"description,omitempty"`
	DescriptionAr *string `json:"descriptionAr,omitempty"`
	IsSystem      *bool   `json:"isSystem,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
	SortOrder     *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (r *CreateCategoryRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.NameAr = strings.TrimSpace(r.NameAr)
}

func (r CreateCategoryRequest) ToModel() m.LookupCategory {
	return m.LookupCategory{
		LookupCategoryCode:          r.Code,
		LookupCategoryName:          r.Name,
		LookupCategoryNameAr:        r.NameAr,
		LookupCategoryDescription:   r.Description,
		LookupCategoryDescriptionAr: r.DescriptionAr,
		LookupCategoryIsSystem:      boolOr(r.IsSystem, false),
		LookupCategoryIsActive:      boolOr(r.IsActive, true),
		LookupCategorySortOrder:     intOr(r.SortOrder, 0),
	}
}

// isSystem is not patchable; system rows come from seeds.
type PatchCategoryRequest struct {
	Code          *string `json:"code,omitempty" validate:"omitempty,min=1,max=80"`
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameAr        *string `json:"nameAr,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description,omitempty"`
	DescriptionAr *string `json:"descriptionAr,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
	SortOrder     *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (p *PatchCategoryRequest) Normalize() {
	trimPtr(p.Code)
	trimPtr(p.Name)
	trimPtr(p.NameAr)
}

func (p PatchCategoryRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.Code != nil {
		u["lookup_category_code"] = *p.Code
	}
	if p.Name != nil {
		u["lookup_category_name"] = *p.Name
	}
	if p.NameAr != nil {
		u["lookup_category_name_ar"] = *p.NameAr
	}
	if p.Description != nil {
		u["lookup_category_description"] = emptyToNil(p.Description)
	}
	if p.DescriptionAr != nil {
		u["lookup_category_description_ar"] = emptyToNil(p.DescriptionAr)
	}
	if p.IsActive != nil {
		u["lookup_category_is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		u["lookup_category_sort_order"] = *p.SortOrder
	}
	return u
}

/* =========================================================
   Item requests
========================================================= */

type CreateItemRequest struct {
	Code      string          `json:"code" validate:"required,max=80"`
	Name      string          `json:"name" validate:"required,max=200"`
	NameAr    string          `json:"nameAr" validate:"required,max=200"`
	Value     *string         `json:"value,omitempty" validate:"omitempty,max=255"`
	Metadata  *datatypes.JSON `json:"metadata,omitempty"`
	IsDefault *bool           `json:"isDefault,omitempty"`
	IsActive  *bool           `json:"isActive,omitempty"`
	SortOrder *int            `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (r *CreateItemRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.NameAr = strings.TrimSpace(r.NameAr)
}

func (r CreateItemRequest) ToModel(categoryID uuid.UUID) m.LookupItem {
	it := m.LookupItem{
		LookupItemCategoryID: categoryID,
		LookupItemCode:       r.Code,
		LookupItemName:       r.Name,
		LookupItemNameAr:     r.NameAr,
		LookupItemValue:      r.Value,
		LookupItemIsDefault:  boolOr(r.IsDefault, false),
		LookupItemIsActive:   boolOr(r.IsActive, true),
		LookupItemSortOrder:  intOr(r.SortOrder, 0),
	}
	if r.Metadata != nil {
		it.LookupItemMetadata = *r.Metadata
	}
	return it
}

type PatchItemRequest struct {
	Code      *string         `json:"code,omitempty" validate:"omitempty,min=1,max=80"`
	Name      *string         `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameAr    *string         `json:"nameAr,omitempty" validate:"omitempty,min=1,max=200"`
	Value     *string         `json:"value,omitempty" validate:"omitempty,max=255"`
	Metadata  *datatypes.JSON `json:"metadata,omitempty"`
	IsDefault *bool           `json:"isDefault,omitempty"`
	IsActive  *bool           `json:"isActive,omitempty"`
	SortOrder *int            `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (p *PatchItemRequest) Normalize() {
	trimPtr(p.Code)
	trimPtr(p.Name)
	trimPtr(p.NameAr)
}

func (p PatchItemRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.Code != nil {
		u["lookup_item_code"] = *p.Code
	}
	if p.Name != nil {
		u["lookup_item_name"] = *p.Name
	}
	if p.NameAr != nil {
		u["lookup_item_name_ar"] = *p.NameAr
	}
	if p.Value != nil {
		u["lookup_item_value"] = emptyToNil(p.Value)
	}
	if p.Metadata != nil {
		u["lookup_item_metadata"] = *p.Metadata
	}
	if p.IsDefault != nil {
		u["lookup_item_is_default"] = *p.IsDefault
	}
	if p.IsActive != nil {
		u["lookup_item_is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		u["lookup_item_sort_order"] = *p.SortOrder
	}
	return u
}
