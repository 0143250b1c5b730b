// file: internals/features/settings/catalog/service/test_type_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/catalog/dto"
	m "labsuite_backend/internals/features/settings/catalog/model"
	"labsuite_backend/internals/features/settings/rules"
	helper "labsuite_backend/internals/helpers"
)

type TestTypeService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewTestTypeService(db *gorm.DB, log *zap.Logger) *TestTypeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TestTypeService{DB: db, Log: log.Named("test_types")}
}

func errTestTypeNotFound() error {
	return helper.NotFound("Test type not found", "نوع الاختبار غير موجود")
}

func testTypeCodeCheck(code string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.TestType{},
		Column:    "test_type_code",
		Value:     code,
		PKColumn:  "test_type_id",
		ExcludeID: excludeID,
		Message:   "Test type with code " + code + " already exists",
		MessageAr: "نوع الاختبار بالرمز " + code + " موجود بالفعل",
	}
}

func (s *TestTypeService) Create(ctx context.Context, req dto.CreateTestTypeRequest) (*m.TestType, error) {
	if err := rules.EnsureUnique(ctx, s.DB, testTypeCodeCheck(req.Code, uuid.Nil)); err != nil {
		return nil, err
	}
	rec := req.ToModel()
	if err := rules.EnsureNonNegative("basePrice", rec.TestTypeBasePrice); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("Test type with code "+req.Code+" already exists", "نوع الاختبار موجود بالفعل")
		}
		return nil, err
	}
	s.Log.Info("test type created", zap.String("id", rec.TestTypeID.String()), zap.String("code", rec.TestTypeCode))
	return &rec, nil
}

func (s *TestTypeService) List(ctx context.Context, includeInactive bool) ([]m.TestType, error) {
	var out []m.TestType
	q := s.DB.WithContext(ctx).Model(&m.TestType{})
	if !includeInactive {
		q = q.Where("test_type_is_active = ?", true)
	}
	err := q.Preload("SampleTypes", func(db *gorm.DB) *gorm.DB {
		return db.Order("sample_type_sort_order ASC, sample_type_code ASC")
	}).
		Order("test_type_sort_order ASC, test_type_code ASC").
		Find(&out).Error
	return out, err
}

func (s *TestTypeService) Get(ctx context.Context, id uuid.UUID) (*m.TestType, error) {
	var rec m.TestType
	err := s.DB.WithContext(ctx).
		Preload("SampleTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sample_type_sort_order ASC, sample_type_code ASC")
		}).
		Preload("Standards").
		Where("test_type_id = ?", id).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errTestTypeNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *TestTypeService) Update(ctx context.Context, id uuid.UUID, req dto.PatchTestTypeRequest) (*m.TestType, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if req.Code != nil {
		if err := rules.EnsureUnique(ctx, s.DB, testTypeCodeCheck(*req.Code, id)); err != nil {
			return nil, err
		}
	}
	if req.BasePrice != nil {
		if err := rules.EnsureNonNegative("basePrice", toNull(req.BasePrice)); err != nil {
			return nil, err
		}
	}

	updates := req.Updates()
	if len(updates) > 0 {
		err := s.DB.WithContext(ctx).Model(&m.TestType{}).
			Where("test_type_id = ?", id).
			Updates(updates).Error
		if err != nil {
			if helper.IsUniqueViolation(err) {
				return nil, helper.Conflict("Test type code already exists", "رمز نوع الاختبار موجود بالفعل")
			}
			return nil, err
		}
	}
	s.Log.Info("test type updated", zap.String("id", id.String()), zap.Int("fields", len(updates)))
	return s.Get(ctx, id)
}

// Delete removes the test type with its sample types and standard links.
func (s *TestTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sample_type_test_type_id = ?", id).Delete(&m.SampleType{}).Error; err != nil {
			return err
		}
		if err := tx.Model(rec).Association("Standards").Clear(); err != nil {
			return err
		}
		return tx.Delete(&m.TestType{}, "test_type_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.Log.Info("test type deleted", zap.String("id", id.String()))
	return nil
}
