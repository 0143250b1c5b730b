package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

type PriceListCategory string

const (
	PriceListCategoryLabTests     PriceListCategory = "LAB_TESTS"
	PriceListCategoryFieldTests   PriceListCategory = "FIELD_TESTS"
	PriceListCategoryConcrete     PriceListCategory = "CONCRETE"
	PriceListCategoryTransport    PriceListCategory = "TRANSPORT"
	PriceListCategoryConsultation PriceListCategory = "CONSULTATION"
	PriceListCategoryPublications PriceListCategory = "PUBLICATIONS"
	PriceListCategoryOther        PriceListCategory = "OTHER"
)

/* =========================
   Price list
   ========================= */

type PriceList struct {
	PriceListID uuid.UUID `json:"price_list_id" gorm:"column:price_list_id;type:uuid;primaryKey"`

	PriceListCode          string            `json:"price_list_code" gorm:"column:price_list_code;type:varchar(50);not null;uniqueIndex:uq_price_lists_code"`
	PriceListName          string            `json:"price_list_name" gorm:"column:price_list_name;type:varchar(200);not null"`
	PriceListNameAr        string            `json:"price_list_name_ar" gorm:"column:price_list_name_ar;type:varchar(200);not null"`
	PriceListDescription   *string           `json:"price_list_description,omitempty" gorm:"column:price_list_description;type:text"`
	PriceListDescriptionAr *string           `json:"price_list_description_ar,omitempty" gorm:"column:price_list_description_ar;type:text"`
	PriceListCategory      PriceListCategory `json:"price_list_category" gorm:"column:price_list_category;type:varchar(30);not null;index:idx_price_lists_category"`
	PriceListCurrency      string            `json:"price_list_currency" gorm:"column:price_list_currency;type:varchar(3);not null"`

	// at most one default per category
	PriceListIsDefault bool `json:"price_list_is_default" gorm:"column:price_list_is_default;not null"`
	PriceListIsActive  bool `json:"price_list_is_active" gorm:"column:price_list_is_active;not null"`
	PriceListSortOrder int  `json:"price_list_sort_order" gorm:"column:price_list_sort_order;not null"`

	PriceListValidFrom *time.Time `json:"price_list_valid_from,omitempty" gorm:"column:price_list_valid_from;type:date"`
	PriceListValidTo   *time.Time `json:"price_list_valid_to,omitempty" gorm:"column:price_list_valid_to;type:date"`

	PriceListCreatedAt time.Time `json:"price_list_created_at" gorm:"column:price_list_created_at;autoCreateTime"`
	PriceListUpdatedAt time.Time `json:"price_list_updated_at" gorm:"column:price_list_updated_at;autoUpdateTime"`

	Items []PriceListItem `json:"items,omitempty" gorm:"foreignKey:PriceListItemPriceListID;references:PriceListID"`
}

func (PriceList) TableName() string { return "price_lists" }

func (p *PriceList) BeforeCreate(tx *gorm.DB) error {
	if p.PriceListID == uuid.Nil {
		p.PriceListID = uuid.New()
	}
	return nil
}

/* =========================
   Price list item
   ========================= */

type PriceListItem struct {
	PriceListItemID          uuid.UUID `json:"price_list_item_id" gorm:"column:price_list_item_id;type:uuid;primaryKey"`
	PriceListItemPriceListID uuid.UUID `json:"price_list_item_price_list_id" gorm:"column:price_list_item_price_list_id;type:uuid;not null;uniqueIndex:uq_price_list_items_list_code,priority:1"`

	// unique within the parent list only
	PriceListItemCode   string  `json:"price_list_item_code" gorm:"column:price_list_item_code;type:varchar(50);not null;uniqueIndex:uq_price_list_items_list_code,priority:2"`
	PriceListItemName   string  `json:"price_list_item_name" gorm:"column:price_list_item_name;type:varchar(200);not null"`
	PriceListItemNameAr string  `json:"price_list_item_name_ar" gorm:"column:price_list_item_name_ar;type:varchar(200);not null"`
	PriceListItemUnit   *string `json:"price_list_item_unit,omitempty" gorm:"column:price_list_item_unit;type:varchar(50)"`

	PriceListItemPrice    decimal.Decimal     `json:"price_list_item_price" gorm:"column:price_list_item_price;type:numeric(12,2);not null"`
	PriceListItemMinPrice decimal.NullDecimal `json:"price_list_item_min_price" gorm:"column:price_list_item_min_price;type:numeric(12,2)"`

	PriceListItemIsActive  bool `json:"price_list_item_is_active" gorm:"column:price_list_item_is_active;not null"`
	PriceListItemSortOrder int  `json:"price_list_item_sort_order" gorm:"column:price_list_item_sort_order;not null"`

	PriceListItemCreatedAt time.Time `json:"price_list_item_created_at" gorm:"column:price_list_item_created_at;autoCreateTime"`
	PriceListItemUpdatedAt time.Time `json:"price_list_item_updated_at" gorm:"column:price_list_item_updated_at;autoUpdateTime"`
}

func (PriceListItem) TableName() string { return "price_list_items" }

func (i *PriceListItem) BeforeCreate(tx *gorm.DB) error {
	if i.PriceListItemID == uuid.Nil {
		i.PriceListItemID = uuid.New()
	}
	return nil
}
