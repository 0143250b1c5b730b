package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/lookups/dto"
	m "labsuite_backend/internals/features/settings/lookups/model"
	"labsuite_backend/internals/features/settings/rules"
	helper "labsuite_backend/internals/helpers"
)

type LookupService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewLookupService(db *gorm.DB, log *zap.Logger) *LookupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LookupService{DB: db, Log: log.Named("lookups")}
}

func errCategoryNotFound() error {
	return helper.NotFound("Lookup category not found", "فئة القائمة غير موجودة")
}

func errLookupItemNotFound() error {
	return helper.NotFound("Lookup item not found", "عنصر القائمة غير موجود")
}

func categoryCodeCheck(code string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.LookupCategory{},
		Column:    "lookup_category_code",
		Value:     code,
		PKColumn:  "lookup_category_id",
		ExcludeID: excludeID,
		Message:   "Lookup category with code " + code + " already exists",
		MessageAr: "فئة القائمة بالرمز " + code + " موجودة بالفعل",
	}
}

func itemCodeCheck(categoryID uuid.UUID, code string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.LookupItem{},
		Column:    "lookup_item_code",
		Value:     code,
		PKColumn:  "lookup_item_id",
		ExcludeID: excludeID,
		Scope:     &rules.Scope{Column: "lookup_item_category_id", Value: categoryID},
		Message:   "Lookup item with code " + code + " already exists in this category",
		MessageAr: "عنصر القائمة بالرمز " + code + " موجود بالفعل في هذه الفئة",
	}
}

func itemDefaultScope(categoryID, keep uuid.UUID) rules.DefaultScope {
	return rules.DefaultScope{
		Model:      &m.LookupItem{},
		FlagColumn: "lookup_item_is_default",
		Scope:      rules.Scope{Column: "lookup_item_category_id", Value: categoryID},
		PKColumn:   "lookup_item_id",
		KeepID:     keep,
	}
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("lookup_item_sort_order ASC, lookup_item_code ASC")
}

func mapLookupWriteErr(err error) error {
	if helper.IsUniqueViolation(err) {
		return helper.Conflict("Lookup code already exists", "رمز القائمة موجود بالفعل")
	}
	return err
}

/* =========================
   Categories
   ========================= */

func (s *LookupService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*m.LookupCategory, error) {
	if err := rules.EnsureUnique(ctx, s.DB, categoryCodeCheck(req.Code, uuid.Nil)); err != nil {
		return nil, err
	}
	rec := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, mapLookupWriteErr(err)
	}
	s.Log.Info("lookup category created", zap.String("id", rec.LookupCategoryID.String()), zap.String("code", rec.LookupCategoryCode))
	return &rec, nil
}

func (s *LookupService) ListCategories(ctx context.Context, includeInactive bool) ([]m.LookupCategory, error) {
	var out []m.LookupCategory
	q := s.DB.WithContext(ctx).Model(&m.LookupCategory{})
	if !includeInactive {
		q = q.Where("lookup_category_is_active = ?", true)
	}
	err := q.Order("lookup_category_sort_order ASC, lookup_category_code ASC").Find(&out).Error
	return out, err
}

func (s *LookupService) GetCategory(ctx context.Context, id uuid.UUID) (*m.LookupCategory, error) {
	var rec m.LookupCategory
	err := s.DB.WithContext(ctx).Preload("Items", orderItems).Where("lookup_category_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCategoryNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetCategoryByCode returns an active category with its active items, for dropdowns.
func (s *LookupService) GetCategoryByCode(ctx context.Context, code string) (*m.LookupCategory, error) {
	var rec m.LookupCategory
	err := s.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return orderItems(db.Where("lookup_item_is_active = ?", true))
		}).
		Where("lookup_category_code = ? AND lookup_category_is_active = ?", code, true).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCategoryNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateCategory refuses to deactivate a system category; other fields stay editable.
func (s *LookupService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.PatchCategoryRequest) (*m.LookupCategory, error) {
	cur, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		if err := rules.EnsureNotSystem(cur.LookupCategoryIsSystem, "deactivate"); err != nil {
			return nil, err
		}
	}
	if req.Code != nil {
		if err := rules.EnsureUnique(ctx, s.DB, categoryCodeCheck(*req.Code, id)); err != nil {
			return nil, err
		}
	}
	if updates := req.Updates(); len(updates) > 0 {
		err := s.DB.WithContext(ctx).Model(&m.LookupCategory{}).
			Where("lookup_category_id = ?", id).
			Updates(updates).Error
		if err != nil {
			return nil, mapLookupWriteErr(err)
		}
	}
	s.Log.Info("lookup category updated", zap.String("id", id.String()))
	return s.GetCategory(ctx, id)
}

func (s *LookupService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	cur, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := rules.EnsureNotSystem(cur.LookupCategoryIsSystem, "delete"); err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lookup_item_category_id = ?", id).Delete(&m.LookupItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m.LookupCategory{}, "lookup_category_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.Log.Info("lookup category deleted", zap.String("id", id.String()), zap.Int("items", len(cur.Items)))
	return nil
}

/* =========================
   Items
   ========================= */

func (s *LookupService) CreateItem(ctx context.Context, categoryID uuid.UUID, req dto.CreateItemRequest) (*m.LookupItem, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&m.LookupCategory{}).Where("lookup_category_id = ?", categoryID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errCategoryNotFound()
	}
	if err := rules.EnsureUnique(ctx, s.DB, itemCodeCheck(categoryID, req.Code, uuid.Nil)); err != nil {
		return nil, err
	}

	rec := req.ToModel(categoryID)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.LookupItemIsDefault {
			if err := rules.DemoteOtherDefaults(tx, itemDefaultScope(categoryID, uuid.Nil)); err != nil {
				return err
			}
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, mapLookupWriteErr(err)
	}
	s.Log.Info("lookup item created",
		zap.String("category_id", categoryID.String()),
		zap.String("code", rec.LookupItemCode),
		zap.Bool("default", rec.LookupItemIsDefault))
	return &rec, nil
}

func (s *LookupService) GetItem(ctx context.Context, id uuid.UUID) (*m.LookupItem, error) {
	var rec m.LookupItem
	err := s.DB.WithContext(ctx).Where("lookup_item_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errLookupItemNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateItem demotes the category's other defaults when the item is flagged default.
func (s *LookupService) UpdateItem(ctx context.Context, id uuid.UUID, req dto.PatchItemRequest) (*m.LookupItem, error) {
	cur, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		if err := rules.EnsureUnique(ctx, s.DB, itemCodeCheck(cur.LookupItemCategoryID, *req.Code, id)); err != nil {
			return nil, err
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.IsDefault != nil && *req.IsDefault {
			if err := rules.DemoteOtherDefaults(tx, itemDefaultScope(cur.LookupItemCategoryID, id)); err != nil {
				return err
			}
		}
		updates := req.Updates()
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&m.LookupItem{}).Where("lookup_item_id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, mapLookupWriteErr(err)
	}
	s.Log.Info("lookup item updated", zap.String("id", id.String()))
	return s.GetItem(ctx, id)
}

func (s *LookupService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&m.LookupItem{}, "lookup_item_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errLookupItemNotFound()
	}
	s.Log.Info("lookup item deleted", zap.String("id", id.String()))
	return nil
}
