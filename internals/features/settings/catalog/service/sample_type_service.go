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

type SampleTypeService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewSampleTypeService(db *gorm.DB, log *zap.Logger) *SampleTypeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SampleTypeService{DB: db, Log: log.Named("sample_types")}
}

type SampleTypeFilter struct {
	IncludeInactive bool
	TestTypeID      *uuid.UUID
}

func sampleTypeCodeCheck(code string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.SampleType{},
		Column:    "sample_type_code",
		Value:     code,
		PKColumn:  "sample_type_id",
		ExcludeID: excludeID,
		Message:   "Sample type with code " + code + " already exists",
		MessageAr: "نوع العينة بالرمز " + code + " موجود بالفعل",
	}
}

// ensureTestTypeExists is the referential check for sample_type_test_type_id.
func (s *SampleTypeService) ensureTestTypeExists(ctx context.Context, id uuid.UUID) error {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&m.TestType{}).Where("test_type_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return helper.BadRequest("Test type not found", "نوع الاختبار غير موجود")
	}
	return nil
}

func (s *SampleTypeService) Create(ctx context.Context, req dto.CreateSampleTypeRequest) (*m.SampleType, error) {
	if err := rules.EnsureUnique(ctx, s.DB, sampleTypeCodeCheck(req.Code, uuid.Nil)); err != nil {
		return nil, err
	}
	if err := s.ensureTestTypeExists(ctx, req.TestTypeID); err != nil {
		return nil, err
	}
	rec := req.ToModel()
	if err := rules.EnsureNonNegative("pricePerUnit", rec.SampleTypePricePerUnit); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("Sample type with code "+req.Code+" already exists", "نوع العينة موجود بالفعل")
		}
		return nil, err
	}
	s.Log.Info("sample type created", zap.String("id", rec.SampleTypeID.String()), zap.String("code", rec.SampleTypeCode))
	return s.Get(ctx, rec.SampleTypeID)
}

func (s *SampleTypeService) List(ctx context.Context, f SampleTypeFilter) ([]m.SampleType, error) {
	var out []m.SampleType
	q := s.DB.WithContext(ctx).Model(&m.SampleType{}).Preload("TestType")
	if !f.IncludeInactive {
		q = q.Where("sample_type_is_active = ?", true)
	}
	if f.TestTypeID != nil {
		q = q.Where("sample_type_test_type_id = ?", *f.TestTypeID)
	}
	err := q.Order("sample_type_sort_order ASC, sample_type_code ASC").Find(&out).Error
	return out, err
}

func (s *SampleTypeService) Get(ctx context.Context, id uuid.UUID) (*m.SampleType, error) {
	var rec m.SampleType
	err := s.DB.WithContext(ctx).Preload("TestType").Where("sample_type_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NotFound("Sample type not found", "نوع العينة غير موجود")
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SampleTypeService) Update(ctx context.Context, id uuid.UUID, req dto.PatchSampleTypeRequest) (*m.SampleType, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if req.Code != nil {
		if err := rules.EnsureUnique(ctx, s.DB, sampleTypeCodeCheck(*req.Code, id)); err != nil {
			return nil, err
		}
	}
	if req.TestTypeID != nil {
		if err := s.ensureTestTypeExists(ctx, *req.TestTypeID); err != nil {
			return nil, err
		}
	}
	if req.PricePerUnit != nil {
		if err := rules.EnsureNonNegative("pricePerUnit", toNull(req.PricePerUnit)); err != nil {
			return nil, err
		}
	}

	updates := req.Updates()
	if len(updates) > 0 {
		err := s.DB.WithContext(ctx).Model(&m.SampleType{}).
			Where("sample_type_id = ?", id).
			Updates(updates).Error
		if err != nil {
			if helper.IsUniqueViolation(err) {
				return nil, helper.Conflict("Sample type code already exists", "رمز نوع العينة موجود بالفعل")
			}
			return nil, err
		}
	}
	s.Log.Info("sample type updated", zap.String("id", id.String()))
	return s.Get(ctx, id)
}

func (s *SampleTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&m.SampleType{}, "sample_type_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Sample type not found", "نوع العينة غير موجود")
	}
	s.Log.Info("sample type deleted", zap.String("id", id.String()))
	return nil
}
