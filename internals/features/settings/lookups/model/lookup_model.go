package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Category
   ========================= */

type LookupCategory struct {
	LookupCategoryID uuid.UUID `json:"lookup_category_id" gorm:"column:lookup_category_id;type:uuid;primaryKey"`

	LookupCategoryCode          string  `json:"lookup_category_code" gorm:"column:lookup_category_code;type:varchar(80);not null;uniqueIndex:uq_lookup_categories_code"`
	LookupCategoryName          string  `json:"lookup_category_name" gorm:"column:lookup_category_name;type:varchar(200);not null"`
	LookupCategoryNameAr        string  `json:"lookup_category_name_ar" gorm:"column:lookup_category_name_ar;type:varchar(200);not null"`
	LookupCategoryDescription   *string `json:"lookup_category_description,omitempty" gorm:"column:lookup_category_description;type:text"`
	LookupCategoryDescriptionAr *string `json:"lookup_category_description_ar,omitempty" gorm:"column:lookup_category_description_ar;type:text"`

	// platform-owned: cannot be deleted or deactivated
	LookupCategoryIsSystem  bool `json:"lookup_category_is_system" gorm:"column:lookup_category_is_system;not null"`
	LookupCategoryIsActive  bool `json:"lookup_category_is_active" gorm:"column:lookup_category_is_active;not null"`
	LookupCategorySortOrder int  `json:"lookup_category_sort_order" gorm:"column:lookup_category_sort_order;not null"`

	LookupCategoryCreatedAt time.Time `json:"lookup_category_created_at" gorm:"column:lookup_category_created_at;autoCreateTime"`
	LookupCategoryUpdatedAt time.Time `json:"lookup_category_updated_at" gorm:"column:lookup_category_updated_at;autoUpdateTime"`

	Items []LookupItem `json:"items,omitempty" gorm:"foreignKey:LookupItemCategoryID;references:LookupCategoryID"`
}

func (LookupCategory) TableName() string { return "lookup_categories" }

func (c *LookupCategory) BeforeCreate(tx *gorm.DB) error {
	if c.LookupCategoryID == uuid.Nil {
		c.LookupCategoryID = uuid.New()
	}
	return nil
}

/* =========================
   Item
   ========================= */

type LookupItem struct {
	LookupItemID         uuid.UUID `json:"lookup_item_id" gorm:"column:lookup_item_id;type:uuid;primaryKey"`
	LookupItemCategoryID uuid.UUID `json:"lookup_item_category_id" gorm:"column:lookup_item_category_id;type:uuid;not null;uniqueIndex:uq_lookup_items_category_code,priority:1"`

	LookupItemCode   string  `json:"lookup_item_code" gorm:"column:lookup_item_code;type:varchar(80);not null;uniqueIndex:uq_lookup_items_category_code,priority:2"`
	LookupItemName   string  `json:"lookup_item_name" gorm:"column:lookup_item_name;type:varchar(200);not null"`
	LookupItemNameAr string  `json:"lookup_item_name_ar" gorm:"column:lookup_item_name_ar;type:varchar(200);not null"`
	LookupItemValue  *string `json:"lookup_item_value,omitempty" gorm:"column:lookup_item_value;type:varchar(255)"`

	// free-form attributes (colour, icon, external code...)
	LookupItemMetadata datatypes.JSON `json:"lookup_item_metadata,omitempty" gorm:"column:lookup_item_metadata"`

	// at most one default per category
	LookupItemIsDefault bool `json:"lookup_item_is_default" gorm:"column:lookup_item_is_default;not null"`
	LookupItemIsActive  bool `json:"lookup_item_is_active" gorm:"column:lookup_item_is_active;not null"`
	LookupItemSortOrder int  `json:"lookup_item_sort_order" gorm:"column:lookup_item_sort_order;not null"`

	LookupItemCreatedAt time.Time `json:"lookup_item_created_at" gorm:"column:lookup_item_created_at;autoCreateTime"`
	LookupItemUpdatedAt time.Time `json:"lookup_item_updated_at" gorm:"column:lookup_item_updated_at;autoUpdateTime"`
}

func (LookupItem) TableName() string { return "lookup_items" }

func (i *LookupItem) BeforeCreate(tx *gorm.DB) error {
	if i.LookupItemID == uuid.Nil {
		i.LookupItemID = uuid.New()
	}
	return nil
}
