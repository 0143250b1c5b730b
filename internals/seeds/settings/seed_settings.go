package settings

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	lookups "labsuite_backend/internals/features/settings/lookups/model"
	sysset "labsuite_backend/internals/features/settings/system_settings/model"
)

//go:embed data_settings.yaml
var seedData []byte

type itemSeed struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	NameAr  string `yaml:"name_ar"`
	Default bool   `yaml:"default"`
}

type categorySeed struct {
	Code   string     `yaml:"code"`
	Name   string     `yaml:"name"`
	NameAr string     `yaml:"name_ar"`
	Items  []itemSeed `yaml:"items"`
}

type settingSeed struct {
	Key            string `yaml:"key"`
	Value          string `yaml:"value"`
	Type           string `yaml:"type"`
	Category       string `yaml:"category"`
	Label          string `yaml:"label"`
	LabelAr        string `yaml:"label_ar"`
	ValidationRule string `yaml:"validation_rule"`
	Public         bool   `yaml:"public"`
}

type seedFile struct {
	LookupCategories []categorySeed `yaml:"lookup_categories"`
	SystemSettings   []settingSeed  `yaml:"system_settings"`
}

// Result counts the rows inserted by Seed.
type Result struct {
	Categories int
	Items      int
	Settings   int
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Seed inserts the embedded system lookups and settings. Rows whose code or
// key already exists are skipped, so running it twice is a no-op.
func Seed(db *gorm.DB, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var data seedFile
	if err := yaml.Unmarshal(seedData, &data); err != nil {
		return Result{}, fmt.Errorf("decode seed file: %w", err)
	}

	var res Result
	err := db.Transaction(func(tx *gorm.DB) error {
		for i, cs := range data.LookupCategories {
			cat, created, err := ensureCategory(tx, cs, i)
			if err != nil {
				return err
			}
			if created {
				res.Categories++
			}
			for j, is := range cs.Items {
				ok, err := ensureItem(tx, cat.LookupCategoryID, is, j)
				if err != nil {
					return err
				}
				if ok {
					res.Items++
				}
			}
		}
		for _, ss := range data.SystemSettings {
			ok, err := ensureSetting(tx, ss)
			if err != nil {
				return err
			}
			if ok {
				res.Settings++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	log.Info("settings seeded",
		zap.Int("categories", res.Categories),
		zap.Int("items", res.Items),
		zap.Int("settings", res.Settings))
	return res, nil
}

func ensureCategory(tx *gorm.DB, cs categorySeed, order int) (*lookups.LookupCategory, bool, error) {
	var existing lookups.LookupCategory
	err := tx.Where("lookup_category_code = ?", cs.Code).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	cat := lookups.LookupCategory{
		LookupCategoryCode:      cs.Code,
		LookupCategoryName:      cs.Name,
		LookupCategoryNameAr:    cs.NameAr,
		LookupCategoryIsSystem:  true,
		LookupCategoryIsActive:  true,
		LookupCategorySortOrder: order,
	}
	if err := tx.Create(&cat).Error; err != nil {
		return nil, false, fmt.Errorf("seed category %s: %w", cs.Code, err)
	}
	return &cat, true, nil
}

func ensureItem(tx *gorm.DB, categoryID uuid.UUID, is itemSeed, order int) (bool, error) {
	var n int64
	if err := tx.Model(&lookups.LookupItem{}).
		Where("lookup_item_category_id = ? AND lookup_item_code = ?", categoryID, is.Code).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	item := lookups.LookupItem{
		LookupItemCategoryID: categoryID,
		LookupItemCode:       is.Code,
		LookupItemName:       is.Name,
		LookupItemNameAr:     is.NameAr,
		LookupItemIsDefault:  is.Default,
		LookupItemIsActive:   true,
		LookupItemSortOrder:  order,
	}
	if err := tx.Create(&item).Error; err != nil {
		return false, fmt.Errorf("seed item %s: %w", is.Code, err)
	}
	return true, nil
}

func ensureSetting(tx *gorm.DB, ss settingSeed) (bool, error) {
	var n int64
	if err := tx.Model(&sysset.SystemSetting{}).Where("system_setting_key = ?", ss.Key).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	rec := sysset.SystemSetting{
		SystemSettingKey:            ss.Key,
		SystemSettingValue:          ss.Value,
		SystemSettingType:           sysset.SettingType(ss.Type),
		SystemSettingCategory:       ss.Category,
		SystemSettingLabel:          strOrNil(ss.Label),
		SystemSettingLabelAr:        strOrNil(ss.LabelAr),
		SystemSettingValidationRule: strOrNil(ss.ValidationRule),
		SystemSettingIsSystem:       true,
		SystemSettingIsPublic:       ss.Public,
	}
	if rec.SystemSettingCategory == "" {
		rec.SystemSettingCategory = "general"
	}
	if err := tx.Create(&rec).Error; err != nil {
		return false, fmt.Errorf("seed setting %s: %w", ss.Key, err)
	}
	return true, nil
}
