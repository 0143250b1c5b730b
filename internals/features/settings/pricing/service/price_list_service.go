package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/pricing/dto"
	m "labsuite_backend/internals/features/settings/pricing/model"
	"labsuite_backend/internals/features/settings/rules"
	helper "labsuite_backend/internals/helpers"
)

type PriceListService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewPriceListService(db *gorm.DB, log *zap.Logger) *PriceListService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PriceListService{DB: db, Log: log.Named("price_lists")}
}

type PriceListFilter struct {
	IncludeInactive bool
	Category        *string
}

func errPriceListNotFound() error {
	return helper.NotFound("Price list not found", "قائمة الأسعار غير موجودة")
}

func errItemNotFound() error {
	return helper.NotFound("Price list item not found", "بند قائمة الأسعار غير موجود")
}

func priceListCodeCheck(code string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.PriceList{},
		Column:    "price_list_code",
		Value:     code,
		PKColumn:  "price_list_id",
		ExcludeID: excludeID,
		Message:   "Price list with code " + code + " already exists",
		MessageAr: "قائمة الأسعار بالرمز " + code + " موجودة بالفعل",
	}
}

func itemCodeCheck(priceListID uuid.UUID, code string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.PriceListItem{},
		Column:    "price_list_item_code",
		Value:     code,
		PKColumn:  "price_list_item_id",
		ExcludeID: excludeID,
		Scope:     &rules.Scope{Column: "price_list_item_price_list_id", Value: priceListID},
		Message:   "Item with code " + code + " already exists in this price list",
		MessageAr: "البند بالرمز " + code + " موجود بالفعل في قائمة الأسعار",
	}
}

func defaultScope(category m.PriceListCategory, keep uuid.UUID) rules.DefaultScope {
	return rules.DefaultScope{
		Model:      &m.PriceList{},
		FlagColumn: "price_list_is_default",
		Scope:      rules.Scope{Column: "price_list_category", Value: category},
		PKColumn:   "price_list_id",
		KeepID:     keep,
	}
}

func checkItemPrices(it m.PriceListItem) error {
	if it.PriceListItemPrice.IsNegative() {
		return helper.BadRequest("price must not be negative", "يجب ألا يكون السعر سالباً")
	}
	return rules.EnsureNonNegative("minPrice", it.PriceListItemMinPrice)
}

func checkValidity(from, to *string) error {
	if from == nil || to == nil || *from == "" || *to == "" {
		return nil
	}
	// YYYY-MM-DD compares lexically
	if *from > *to {
		return helper.BadRequest("validFrom must not be after validTo", "يجب ألا يكون تاريخ البداية بعد تاريخ النهاية")
	}
	return nil
}

func mapPriceListWriteErr(err error) error {
	if helper.IsUniqueViolation(err) {
		return helper.Conflict("Price list or item code already exists", "رمز قائمة الأسعار أو البند موجود بالفعل")
	}
	return err
}

// Create inserts the list with its nested items. When the list is default,
// other defaults of the category are demoted in the same transaction.
func (s *PriceListService) Create(ctx context.Context, req dto.CreatePriceListRequest) (*m.PriceList, error) {
	if err := rules.EnsureUnique(ctx, s.DB, priceListCodeCheck(req.Code, uuid.Nil)); err != nil {
		return nil, err
	}
	if err := checkValidity(req.ValidFrom, req.ValidTo); err != nil {
		return nil, err
	}
	// codes compare exactly, as in itemCodeCheck
	seen := make(map[string]struct{}, len(req.Items))
	for _, it := range req.Items {
		if _, dup := seen[it.Code]; dup {
			return nil, helper.Conflict("Duplicate item code "+it.Code+" in payload", "رمز البند "+it.Code+" مكرر في الطلب")
		}
		seen[it.Code] = struct{}{}
	}

	rec := req.ToModel()
	for _, it := range rec.Items {
		if err := checkItemPrices(it); err != nil {
			return nil, err
		}
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.PriceListIsDefault {
			if err := rules.DemoteOtherDefaults(tx, defaultScope(rec.PriceListCategory, uuid.Nil)); err != nil {
				return err
			}
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, mapPriceListWriteErr(err)
	}
	s.Log.Info("price list created",
		zap.String("id", rec.PriceListID.String()),
		zap.String("code", rec.PriceListCode),
		zap.Int("items", len(rec.Items)),
		zap.Bool("default", rec.PriceListIsDefault))
	return s.Get(ctx, rec.PriceListID)
}

func (s *PriceListService) List(ctx context.Context, f PriceListFilter) ([]m.PriceList, error) {
	var out []m.PriceList
	q := s.DB.WithContext(ctx).Model(&m.PriceList{}).Preload("Items", orderItems)
	if !f.IncludeInactive {
		q = q.Where("price_list_is_active = ?", true)
	}
	if f.Category != nil && *f.Category != "" {
		q = q.Where("price_list_category = ?", strings.ToUpper(*f.Category))
	}
	err := q.Order("price_list_sort_order ASC, price_list_code ASC").Find(&out).Error
	return out, err
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("price_list_item_sort_order ASC, price_list_item_code ASC")
}

func (s *PriceListService) Get(ctx context.Context, id uuid.UUID) (*m.PriceList, error) {
	var rec m.PriceList
	err := s.DB.WithContext(ctx).Preload("Items", orderItems).Where("price_list_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errPriceListNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PriceListService) Update(ctx context.Context, id uuid.UUID, req dto.PatchPriceListRequest) (*m.PriceList, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		if err := rules.EnsureUnique(ctx, s.DB, priceListCodeCheck(*req.Code, id)); err != nil {
			return nil, err
		}
	}
	from, to := req.ValidFrom, req.ValidTo
	if from == nil {
		from = dtoDate(cur.PriceListValidFrom)
	}
	if to == nil {
		to = dtoDate(cur.PriceListValidTo)
	}
	if err := checkValidity(from, to); err != nil {
		return nil, err
	}

	category := cur.PriceListCategory
	if req.Category != nil {
		category = m.PriceListCategory(*req.Category)
	}
	isDefault := cur.PriceListIsDefault
	if req.IsDefault != nil {
		isDefault = *req.IsDefault
	}
	// demote when the row becomes default or carries its default flag into another category
	demote := isDefault && (req.IsDefault != nil || category != cur.PriceListCategory)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if demote {
			if err := rules.DemoteOtherDefaults(tx, defaultScope(category, id)); err != nil {
				return err
			}
		}
		updates := req.Updates()
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&m.PriceList{}).Where("price_list_id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, mapPriceListWriteErr(err)
	}
	s.Log.Info("price list updated", zap.String("id", id.String()), zap.Bool("demoted_others", demote))
	return s.Get(ctx, id)
}

func dtoDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format("2006-01-02")
	return &v
}

func (s *PriceListService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("price_list_item_price_list_id = ?", id).Delete(&m.PriceListItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&m.PriceList{}, "price_list_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.Log.Info("price list deleted", zap.String("id", id.String()))
	return nil
}

/* =========================
   Items
   ========================= */

func (s *PriceListService) AddItem(ctx context.Context, priceListID uuid.UUID, req dto.CreatePriceListItemRequest) (*m.PriceListItem, error) {
	if _, err := s.Get(ctx, priceListID); err != nil {
		return nil, err
	}
	if err := rules.EnsureUnique(ctx, s.DB, itemCodeCheck(priceListID, req.Code, uuid.Nil)); err != nil {
		return nil, err
	}
	it := req.ToModel(priceListID)
	if err := checkItemPrices(it); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&it).Error; err != nil {
		return nil, mapPriceListWriteErr(err)
	}
	s.Log.Info("price list item added",
		zap.String("price_list_id", priceListID.String()),
		zap.String("code", it.PriceListItemCode))
	return &it, nil
}

func (s *PriceListService) getItem(ctx context.Context, priceListID, itemID uuid.UUID) (*m.PriceListItem, error) {
	var it m.PriceListItem
	err := s.DB.WithContext(ctx).
		Where("price_list_item_id = ? AND price_list_item_price_list_id = ?", itemID, priceListID).
		First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errItemNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *PriceListService) UpdateItem(ctx context.Context, priceListID, itemID uuid.UUID, req dto.PatchPriceListItemRequest) (*m.PriceListItem, error) {
	if _, err := s.getItem(ctx, priceListID, itemID); err != nil {
		return nil, err
	}
	if req.Code != nil {
		if err := rules.EnsureUnique(ctx, s.DB, itemCodeCheck(priceListID, *req.Code, itemID)); err != nil {
			return nil, err
		}
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, helper.BadRequest("price must not be negative", "يجب ألا يكون السعر سالباً")
	}
	if err := rules.EnsureNonNegative("minPrice", toNull(req.MinPrice)); err != nil {
		return nil, err
	}

	if updates := req.Updates(); len(updates) > 0 {
		err := s.DB.WithContext(ctx).Model(&m.PriceListItem{}).
			Where("price_list_item_id = ?", itemID).
			Updates(updates).Error
		if err != nil {
			return nil, mapPriceListWriteErr(err)
		}
	}
	return s.getItem(ctx, priceListID, itemID)
}

func (s *PriceListService) DeleteItem(ctx context.Context, priceListID, itemID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("price_list_item_id = ? AND price_list_item_price_list_id = ?", itemID, priceListID).
		Delete(&m.PriceListItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errItemNotFound()
	}
	s.Log.Info("price list item deleted", zap.String("id", itemID.String()))
	return nil
}
