package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/catalog/dto"
	m "labsuite_backend/internals/features/settings/catalog/model"
	"labsuite_backend/internals/features/settings/rules"
	helper "labsuite_backend/internals/helpers"
)

type StandardService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewStandardService(db *gorm.DB, log *zap.Logger) *StandardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StandardService{DB: db, Log: log.Named("standards")}
}

type StandardFilter struct {
	IncludeInactive bool
	Type            *string
}

func standardCodeCheck(code string, excludeID uuid.UUID) rules.UniqueCheck {
	return rules.UniqueCheck{
		Model:     &m.Standard{},
		Column:    "standard_code",
		Value:     code,
		PKColumn:  "standard_id",
		ExcludeID: excludeID,
		Message:   "Standard with code " + code + " already exists",
		MessageAr: "المعيار بالرمز " + code + " موجود بالفعل",
	}
}

// loadTestTypes resolves ids to rows, failing with the ids that do not exist.
func loadTestTypes(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]m.TestType, error) {
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return []m.TestType{}, nil
	}
	var found []m.TestType
	if err := db.WithContext(ctx).Where("test_type_id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) == len(ids) {
		return found, nil
	}
	have := make(map[uuid.UUID]struct{}, len(found))
	for _, t := range found {
		have[t.TestTypeID] = struct{}{}
	}
	missing := make([]string, 0, len(ids)-len(found))
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	list := strings.Join(missing, ", ")
	return nil, helper.BadRequest("Test types not found: "+list, "أنواع الاختبار غير موجودة: "+list)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *StandardService) Create(ctx context.Context, req dto.CreateStandardRequest) (*m.Standard, error) {
	if err := rules.EnsureUnique(ctx, s.DB, standardCodeCheck(req.Code, uuid.Nil)); err != nil {
		return nil, err
	}
	linked, err := loadTestTypes(ctx, s.DB, req.TestTypeIDs)
	if err != nil {
		return nil, err
	}

	rec := req.ToModel()
	rec.TestTypes = linked
	// link rows only; referenced test types are never upserted
	if err := s.DB.WithContext(ctx).Omit("TestTypes.*").Create(&rec).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("Standard with code "+req.Code+" already exists", "المعيار موجود بالفعل")
		}
		return nil, err
	}
	s.Log.Info("standard created",
		zap.String("id", rec.StandardID.String()),
		zap.String("code", rec.StandardCode),
		zap.Int("test_types", len(linked)))
	return s.Get(ctx, rec.StandardID)
}

func (s *StandardService) List(ctx context.Context, f StandardFilter) ([]m.Standard, error) {
	var out []m.Standard
	q := s.DB.WithContext(ctx).Model(&m.Standard{}).Preload("TestTypes")
	if !f.IncludeInactive {
		q = q.Where("standard_is_active = ?", true)
	}
	if f.Type != nil && *f.Type != "" {
		q = q.Where("standard_type = ?", strings.ToUpper(*f.Type))
	}
	err := q.Order("standard_sort_order ASC, standard_code ASC").Find(&out).Error
	return out, err
}

func (s *StandardService) Get(ctx context.Context, id uuid.UUID) (*m.Standard, error) {
	var rec m.Standard
	err := s.DB.WithContext(ctx).Preload("TestTypes").Where("standard_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NotFound("Standard not found", "المعيار غير موجود")
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *StandardService) Update(ctx context.Context, id uuid.UUID, req dto.PatchStandardRequest) (*m.Standard, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		if err := rules.EnsureUnique(ctx, s.DB, standardCodeCheck(*req.Code, id)); err != nil {
			return nil, err
		}
	}
	var linked []m.TestType
	if req.TestTypeIDs != nil {
		if linked, err = loadTestTypes(ctx, s.DB, *req.TestTypeIDs); err != nil {
			return nil, err
		}
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if updates := req.Updates(); len(updates) > 0 {
			if err := tx.Model(&m.Standard{}).Where("standard_id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.TestTypeIDs == nil {
			return nil
		}
		assoc := tx.Model(rec).Omit("TestTypes.*").Association("TestTypes")
		if len(linked) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(linked)
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, helper.Conflict("Standard code already exists", "رمز المعيار موجود بالفعل")
		}
		return nil, err
	}
	s.Log.Info("standard updated", zap.String("id", id.String()))
	return s.Get(ctx, id)
}

// Delete drops the standard and its test type links.
func (s *StandardService) Delete(ctx context.Context, id uuid.UUID) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(rec).Association("TestTypes").Clear(); err != nil {
			return err
		}
		return tx.Delete(&m.Standard{}, "standard_id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.Log.Info("standard deleted", zap.String("id", id.String()))
	return nil
}
