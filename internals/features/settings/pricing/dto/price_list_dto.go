package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "labsuite_backend/internals/features/settings/pricing/model"
)

/* =========================================================
   Response
========================================================= */

type PriceListDTO struct {
	ID            uuid.UUID          `json:"id"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	NameAr        string             `json:"nameAr"`
	Description   *string            `json:"description,omitempty"`
	DescriptionAr *string            `json:"descriptionAr,omitempty"`
	Category      string             `json:"category"`
	Currency      string             `json:"currency"`
	IsDefault     bool               `json:"isDefault"`
	IsActive      bool               `json:"isActive"`
	SortOrder     int                `json:"sortOrder"`
	ValidFrom     *string            `json:"validFrom,omitempty"`
	ValidTo       *string            `json:"validTo,omitempty"`
	Items         []PriceListItemDTO `json:"items"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type PriceListItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	PriceListID uuid.UUID        `json:"priceListId"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	NameAr      string           `json:"nameAr"`
	Unit        *string          `json:"unit,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	MinPrice    *decimal.Decimal `json:"minPrice"`
	IsActive    bool             `json:"isActive"`
	SortOrder   int              `json:"sortOrder"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func FromPriceList(p m.PriceList) PriceListDTO {
	return PriceListDTO{
		ID:            p.PriceListID,
		Code:          p.PriceListCode,
		Name:          p.PriceListName,
		NameAr:        p.PriceListNameAr,
		Description:   p.PriceListDescription,
		DescriptionAr: p.PriceListDescriptionAr,
		Category:      string(p.PriceListCategory),
		Currency:      p.PriceListCurrency,
		IsDefault:     p.PriceListIsDefault,
		IsActive:      p.PriceListIsActive,
		SortOrder:     p.PriceListSortOrder,
		ValidFrom:     formatDatePtr(p.PriceListValidFrom),
		ValidTo:       formatDatePtr(p.PriceListValidTo),
		Items:         FromPriceListItems(p.Items),
		CreatedAt:     p.PriceListCreatedAt,
		UpdatedAt:     p.PriceListUpdatedAt,
	}
}

func FromPriceLists(xs []m.PriceList) []PriceListDTO {
	out := make([]PriceListDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromPriceList(it))
	}
	return out
}

func FromPriceListItem(i m.PriceListItem) PriceListItemDTO {
	return PriceListItemDTO{
		ID:          i.PriceListItemID,
		PriceListID: i.PriceListItemPriceListID,
		Code:        i.PriceListItemCode,
		Name:        i.PriceListItemName,
		NameAr:      i.PriceListItemNameAr,
		Unit:        i.PriceListItemUnit,
		Price:       i.PriceListItemPrice,
		MinPrice:    nullDecimalPtr(i.PriceListItemMinPrice),
		IsActive:    i.PriceListItemIsActive,
		SortOrder:   i.PriceListItemSortOrder,
		CreatedAt:   i.PriceListItemCreatedAt,
		UpdatedAt:   i.PriceListItemUpdatedAt,
	}
}

func FromPriceListItems(xs []m.PriceListItem) []PriceListItemDTO {
	out := make([]PriceListItemDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromPriceListItem(it))
	}
	return out
}

/* =========================================================
   Create
========================================================= */

type CreatePriceListItemRequest struct {
	Code      string           `json:"code" validate:"required,max=50"`
	Name      string           `json:"name" validate:"required,max=200"`
	NameAr    string           `json:"nameAr" validate:"required,max=200"`
	Unit      *string          `json:"unit,omitempty" validate:"omitempty,max=50"`
	Price     *decimal.Decimal `json:"price" validate:"required"`
	MinPrice  *decimal.Decimal `json:"minPrice,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`
	SortOrder *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (r *CreatePriceListItemRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.NameAr = strings.TrimSpace(r.NameAr)
}

func (r CreatePriceListItemRequest) ToModel(priceListID uuid.UUID) m.PriceListItem {
	it := m.PriceListItem{
		PriceListItemPriceListID: priceListID,
		PriceListItemCode:        r.Code,
		PriceListItemName:        r.Name,
		PriceListItemNameAr:      r.NameAr,
		PriceListItemUnit:        r.Unit,
		PriceListItemMinPrice:    toNullDecimal(r.MinPrice),
		PriceListItemIsActive:    boolOr(r.IsActive, true),
		PriceListItemSortOrder:   intOr(r.SortOrder, 0),
	}
	if r.Price != nil {
		it.PriceListItemPrice = *r.Price
	}
	return it
}

type CreatePriceListRequest struct {
	Code          string  `json:"code" validate:"required,max=50"`
	Name          string  `json:"name" validate:"required,max=200"`
	NameAr        string  `json:"nameAr" validate:"required,max=200"`
	Description   *string `json:"description,omitempty"`
	DescriptionAr *string `json:"descriptionAr,omitempty"`
	Category      string  `json:"category" validate:"required,oneof=LAB_TESTS FIELD_TESTS CONCRETE TRANSPORT CONSULTATION PUBLICATIONS OTHER"`
	Currency      string  `json:"currency,omitempty" validate:"omitempty,len=3"`
	IsDefault     *bool   `json:"isDefault,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
	SortOrder     *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	ValidFrom     *string `json:"validFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidTo       *string `json:"validTo,omitempty" validate:"omitempty,datetime=2006-01-02"`

	Items []CreatePriceListItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

func (r *CreatePriceListRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
	r.Name = strings.TrimSpace(r.Name)
	r.NameAr = strings.TrimSpace(r.NameAr)
	r.Category = strings.ToUpper(strings.TrimSpace(r.Category))
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	for i := range r.Items {
		r.Items[i].Normalize()
	}
}

func (r CreatePriceListRequest) ToModel() m.PriceList {
	cur := r.Currency
	if cur == "" {
		cur = "EGP"
	}
	pl := m.PriceList{
		PriceListCode:          r.Code,
		PriceListName:          r.Name,
		PriceListNameAr:        r.NameAr,
		PriceListDescription:   r.Description,
		PriceListDescriptionAr: r.DescriptionAr,
		PriceListCategory:      m.PriceListCategory(r.Category),
		PriceListCurrency:      cur,
		PriceListIsDefault:     boolOr(r.IsDefault, false),
		PriceListIsActive:      boolOr(r.IsActive, true),
		PriceListSortOrder:     intOr(r.SortOrder, 0),
		PriceListValidFrom:     parseDatePtr(r.ValidFrom),
		PriceListValidTo:       parseDatePtr(r.ValidTo),
	}
	for _, it := range r.Items {
		pl.Items = append(pl.Items, it.ToModel(uuid.Nil))
	}
	return pl
}

/* =========================================================
   Patch
========================================================= */

type PatchPriceListRequest struct {
	Code          *string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameAr        *string `json:"nameAr,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description,omitempty"`
	DescriptionAr *string `json:"descriptionAr,omitempty"`
	Category      *string `json:"category,omitempty" validate:"omitempty,oneof=LAB_TESTS FIELD_TESTS CONCRETE TRANSPORT CONSULTATION PUBLICATIONS OTHER"`
	Currency      *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	IsDefault     *bool   `json:"isDefault,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
	SortOrder     *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	// "" clears the date
	ValidFrom *string `json:"validFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ValidTo   *string `json:"validTo,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (p *PatchPriceListRequest) Normalize() {
	trimPtr(p.Code)
	trimPtr(p.Name)
	trimPtr(p.NameAr)
	trimPtr(p.ValidFrom)
	trimPtr(p.ValidTo)
	if p.Category != nil {
		v := strings.ToUpper(strings.TrimSpace(*p.Category))
		p.Category = &v
	}
	if p.Currency != nil {
		v := strings.ToUpper(strings.TrimSpace(*p.Currency))
		p.Currency = &v
	}
}

func (p PatchPriceListRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.Code != nil {
		u["price_list_code"] = *p.Code
	}
	if p.Name != nil {
		u["price_list_name"] = *p.Name
	}
	if p.NameAr != nil {
		u["price_list_name_ar"] = *p.NameAr
	}
	if p.Description != nil {
		u["price_list_description"] = emptyToNil(p.Description)
	}
	if p.DescriptionAr != nil {
		u["price_list_description_ar"] = emptyToNil(p.DescriptionAr)
	}
	if p.Category != nil {
		u["price_list_category"] = *p.Category
	}
	if p.Currency != nil {
		u["price_list_currency"] = *p.Currency
	}
	if p.IsDefault != nil {
		u["price_list_is_default"] = *p.IsDefault
	}
	if p.IsActive != nil {
		u["price_list_is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		u["price_list_sort_order"] = *p.SortOrder
	}
	if p.ValidFrom != nil {
		u["price_list_valid_from"] = parseDatePtr(p.ValidFrom)
	}
	if p.ValidTo != nil {
		u["price_list_valid_to"] = parseDatePtr(p.ValidTo)
	}
	return u
}

type PatchPriceListItemRequest struct {
	Code      *string          `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Name      *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	NameAr    *string          `json:"nameAr,omitempty" validate:"omitempty,min=1,max=200"`
	Unit      *string          `json:"unit,omitempty" validate:"omitempty,max=50"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	MinPrice  *decimal.Decimal `json:"minPrice,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`
	SortOrder *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

func (p *PatchPriceListItemRequest) Normalize() {
	trimPtr(p.Code)
	trimPtr(p.Name)
	trimPtr(p.NameAr)
}

func (p PatchPriceListItemRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.Code != nil {
		u["price_list_item_code"] = *p.Code
	}
	if p.Name != nil {
		u["price_list_item_name"] = *p.Name
	}
	if p.NameAr != nil {
		u["price_list_item_name_ar"] = *p.NameAr
	}
	if p.Unit != nil {
		u["price_list_item_unit"] = emptyToNil(p.Unit)
	}
	if p.Price != nil {
		u["price_list_item_price"] = *p.Price
	}
	if p.MinPrice != nil {
		u["price_list_item_min_price"] = *p.MinPrice
	}
	if p.IsActive != nil {
		u["price_list_item_is_active"] = *p.IsActive
	}
	if p.SortOrder != nil {
		u["price_list_item_sort_order"] = *p.SortOrder
	}
	return u
}
