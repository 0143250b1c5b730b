package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/system_settings/dto"
	m "labsuite_backend/internals/features/settings/system_settings/model"
	"labsuite_backend/internals/features/settings/rules"
	helper "labsuite_backend/internals/helpers"
	"labsuite_backend/internals/metrics"
)

type SystemSettingService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewSystemSettingService(db *gorm.DB, log *zap.Logger) *SystemSettingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SystemSettingService{DB: db, Log: log.Named("system_settings")}
}

func errSettingNotFound(key string) error {
	return helper.NotFound("Setting "+key+" not found", "الإعداد "+key+" غير موجود")
}

func keyCheck(key string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.SystemSetting{},
		Column:    "system_setting_key",
		Value:     key,
		PKColumn:  "system_setting_id",
		ExcludeID: excludeID,
		Message:   "Setting with key " + key + " already exists",
		MessageAr: "الإعداد بالمفتاح " + key + " موجود بالفعل",
	}
}

func invalidRule(err error) error {
	return helper.BadRequest("Invalid validation rule: "+err.Error(), "قاعدة التحقق غير صالحة")
}

func (s *SystemSettingService) Create(ctx context.Context, req dto.CreateSystemSettingRequest) (*m.SystemSetting, error) {
	if err := rules.EnsureUnique(ctx, s.DB, keyCheck(req.Key, uuid.Nil)); err != nil {
		return nil, err
	}
	if req.ValidationRule != nil {
		if _, err := regexp.Compile(*req.ValidationRule); err != nil {
			return nil, invalidRule(err)
		}
	}

	rec := req.ToModel()
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("Setting with key "+req.Key+" already exists", "الإعداد موجود بالفعل")
		}
		return nil, err
	}
	s.Log.Info("setting created", zap.String("key", rec.SystemSettingKey), zap.String("type", string(rec.SystemSettingType)))
	return &rec, nil
}

func (s *SystemSettingService) List(ctx context.Context, category *string) ([]m.SystemSetting, error) {
	var out []m.SystemSetting
	q := s.DB.WithContext(ctx).Model(&m.SystemSetting{})
	if category != nil && strings.TrimSpace(*category) != "" {
		q = q.Where("system_setting_category = ?", strings.TrimSpace(*category))
	}
	err := q.Order("system_setting_category ASC, system_setting_key ASC").Find(&out).Error
	return out, err
}

func (s *SystemSettingService) Get(ctx context.Context, key string) (*m.SystemSetting, error) {
	return s.get(ctx, s.DB, key)
}

func (s *SystemSettingService) get(ctx context.Context, db *gorm.DB, key string) (*m.SystemSetting, error) {
	var rec m.SystemSetting
	err := db.WithContext(ctx).Where("system_setting_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errSettingNotFound(key)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetSettingValue returns the typed value of key. A missing key yields def
// when given, NotFound otherwise. Default values are returned as-is.
func (s *SystemSettingService) GetSettingValue(ctx context.Context, key string, def *string) (any, error) {
	rec, err := s.Get(ctx, key)
	if err != nil {
		if def != nil && helper.IsNotFound(err) {
			return *def, nil
		}
		return nil, err
	}
	return rec.Typed()
}

// GetPublic returns key -> typed value for every public setting.
// A row whose stored value does not coerce is logged and left out.
func (s *SystemSettingService) GetPublic(ctx context.Context) (map[string]any, error) {
	var rows []m.SystemSetting
	if err := s.DB.WithContext(ctx).
		Where("system_setting_is_public = ?", true).
		Order("system_setting_key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]any, len(rows))
	for _, r := range rows {
		v, err := r.Typed()
		if err != nil {
			s.Log.Warn("public setting skipped",
				zap.String("key", r.SystemSettingKey),
				zap.String("type", string(r.SystemSettingType)),
				zap.Error(err))
			continue
		}
		out[r.SystemSettingKey] = v
	}
	return out, nil
}

// Update applies patch to key. The value is checked against the rule in the
// patch when one is sent, otherwise against the stored rule.
func (s *SystemSettingService) Update(ctx context.Context, key string, req dto.PatchSystemSettingRequest) (*m.SystemSetting, error) {
	var out *m.SystemSetting
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.update(ctx, tx, key, req)
		out = rec
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Log.Info("setting updated", zap.String("key", key))
	return out, nil
}

func (s *SystemSettingService) update(ctx context.Context, tx *gorm.DB, key string, req dto.PatchSystemSettingRequest) (*m.SystemSetting, error) {
	rec, err := s.get(ctx, tx, key)
	if err != nil {
		return nil, err
	}

	var re *regexp.Regexp
	switch {
	case req.ValidationRule != nil && strings.TrimSpace(*req.ValidationRule) != "":
		if re, err = regexp.Compile(strings.TrimSpace(*req.ValidationRule)); err != nil {
			return nil, invalidRule(err)
		}
	case req.ValidationRule == nil && rec.SystemSettingValidationRule != nil:
		if re, err = regexp.Compile(*rec.SystemSettingValidationRule); err != nil {
			return nil, fmt.Errorf("setting %s: stored validation rule: %w", key, err)
		}
	}
	if req.Value != nil && re != nil && !re.MatchString(*req.Value) {
		return nil, helper.BadRequest(
			"Value for "+key+" does not match validation rule",
			"قيمة "+key+" لا تطابق قاعدة التحقق",
		)
	}

	updates := req.Updates()
	if len(updates) > 0 {
		if err := tx.WithContext(ctx).Model(&m.SystemSetting{}).
			Where("system_setting_id = ?", rec.SystemSettingID).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.get(ctx, tx, key)
}

// BulkUpdate applies each value independently; one failure does not undo
// the others. Results keep the request order.
func (s *SystemSettingService) BulkUpdate(ctx context.Context, items []dto.BulkSettingItem) []dto.BulkResult {
	out := make([]dto.BulkResult, 0, len(items))
	failed := 0
	for _, it := range items {
		rec, err := s.Update(ctx, it.Key, dto.PatchSystemSettingRequest{Value: it.Value})
		if err != nil {
			failed++
			out = append(out, dto.BulkResult{Key: it.Key, Success: false, Error: bulkErrorMessage(err)})
			continue
		}
		d := dto.FromSystemSetting(*rec)
		out = append(out, dto.BulkResult{Key: it.Key, Success: true, Data: &d})
	}
	metrics.RecordBulkFailures(failed)
	s.Log.Info("bulk settings update", zap.Int("total", len(items)), zap.Int("failed", failed))
	return out
}

func bulkErrorMessage(err error) string {
	if ae, ok := helper.AsAppError(err); ok {
		return ae.Message
	}
	return err.Error()
}

func (s *SystemSettingService) Delete(ctx context.Context, key string) error {
	rec, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := rules.EnsureNotSystem(rec.SystemSettingIsSystem, "delete"); err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Delete(&m.SystemSetting{}, "system_setting_id = ?", rec.SystemSettingID).Error; err != nil {
		return err
	}
	s.Log.Info("setting deleted", zap.String("key", key))
	return nil
}
