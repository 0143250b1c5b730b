package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/pricing/dto"
	m "labsuite_backend/internals/features/settings/pricing/model"
	"labsuite_backend/internals/features/settings/rules"
	helper "labsuite_backend/internals/helpers"
)

type MixerTypeService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewMixerTypeService(db *gorm.DB, log *zap.Logger) *MixerTypeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MixerTypeService{DB: db, Log: log.Named("mixer_types")}
}

func mixerCodeCheck(code string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.MixerType{},
		Column:    "mixer_type_code",
		Value:     code,
		PKColumn:  "mixer_type_id",
		ExcludeID: excludeID,
		Message:   "Mixer type with code " + code + " already exists",
		MessageAr: "نوع الخلاطة بالرمز " + code + " موجود بالفعل",
	}
}

func (s *MixerTypeService) Create(ctx context.Context, req dto.CreateMixerTypeRequest) (*m.MixerType, error) {
	if err := rules.EnsureUnique(ctx, s.DB, mixerCodeCheck(req.Code, uuid.Nil)); err != nil {
		return nil, err
	}
	rec := req.ToModel()
	if err := rules.EnsureNonNegative("capacity", rec.MixerTypeCapacity); err != nil {
		return nil, err
	}
	if err := rules.EnsureNonNegative("pricePerBatch", rec.MixerTypePricePerBatch); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("Mixer type with code "+req.Code+" already exists", "نوع الخلاطة موجود بالفعل")
		}
		return nil, err
	}
	s.Log.Info("mixer type created", zap.String("id", rec.MixerTypeID.String()), zap.String("code", rec.MixerTypeCode))
	return &rec, nil
}

func (s *MixerTypeService) List(ctx context.Context, includeInactive bool) ([]m.MixerType, error) {
	var out []m.MixerType
	q := s.DB.WithContext(ctx).Model(&m.MixerType{})
	if !includeInactive {
		q = q.Where("mixer_type_is_active = ?", true)
	}
	err := q.Order("mixer_type_sort_order ASC, mixer_type_code ASC").Find(&out).Error
	return out, err
}

func (s *MixerTypeService) Get(ctx context.Context, id uuid.UUID) (*m.MixerType, error) {
	var rec m.MixerType
	err := s.DB.WithContext(ctx).Where("mixer_type_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NotFound("Mixer type not found", "نوع الخلاطة غير موجود")
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MixerTypeService) Update(ctx context.Context, id uuid.UUID, req dto.PatchMixerTypeRequest) (*m.MixerType, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if req.Code != nil {
		if err := rules.EnsureUnique(ctx, s.DB, mixerCodeCheck(*req.Code, id)); err != nil {
			return nil, err
		}
	}
	if err := rules.EnsureNonNegative("capacity", toNull(req.Capacity)); err != nil {
		return nil, err
	}
	if err := rules.EnsureNonNegative("pricePerBatch", toNull(req.PricePerBatch)); err != nil {
		return nil, err
	}
	if updates := req.Updates(); len(updates) > 0 {
		err := s.DB.WithContext(ctx).Model(&m.MixerType{}).
			Where("mixer_type_id = ?", id).
			Updates(updates).Error
		if err != nil {
			if helper.IsUniqueViolation(err) {
				return nil, helper.Conflict("Mixer type code already exists", "رمز نوع الخلاطة موجود بالفعل")
			}
			return nil, err
		}
	}
	s.Log.Info("mixer type updated", zap.String("id", id.String()))
	return s.Get(ctx, id)
}

func (s *MixerTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&m.MixerType{}, "mixer_type_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Mixer type not found", "نوع الخلاطة غير موجود")
	}
	s.Log.Info("mixer type deleted", zap.String("id", id.String()))
	return nil
}
