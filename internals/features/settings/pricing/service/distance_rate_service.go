package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "labsuite_backend/internals/features/settings/pricing/dto"
	m "labsuite_backend/internals/features/settings/pricing/model"
	"labsuite_backend/internals/features/settings/rules"
	helper "labsuite_backend/internals/helpers"
)

type DistanceRateService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewDistanceRateService(db *gorm.DB, log *zap.Logger) *DistanceRateService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DistanceRateService{DB: db, Log: log.Named("distance_rates")}
}

func errRateNotFound() error {
	return helper.NotFound("Distance rate not found", "سعر المسافة غير موجود")
}

func errInvalidRange() error {
	return helper.BadRequest("fromKm must be less than toKm", "يجب أن تكون المسافة من أقل من المسافة إلى")
}

func overlapConflict(o m.DistanceRate) error {
	return helper.Conflict(
		fmt.Sprintf("Distance range overlaps with existing rate (%g-%g km)", o.DistanceRateFromKm, o.DistanceRateToKm),
		fmt.Sprintf("نطاق المسافة يتداخل مع سعر موجود (%g-%g كم)", o.DistanceRateFromKm, o.DistanceRateToKm),
	)
}

func bandOf(d m.DistanceRate) rules.Range {
	return rules.Range{FromKm: d.DistanceRateFromKm, ToKm: d.DistanceRateToKm}
}

// ensureNoOverlap scans the active bands (except self) inside tx.
func ensureNoOverlap(tx *gorm.DB, candidate rules.Range, self uuid.UUID) error {
	var active []m.DistanceRate
	q := tx.Where("distance_rate_is_active = ?", true)
	if self != uuid.Nil {
		q = q.Where("distance_rate_id <> ?", self)
	}
	if err := q.Order("distance_rate_from_km ASC").Find(&active).Error; err != nil {
		return err
	}
	bands := make([]rules.Range, len(active))
	for i, a := range active {
		bands[i] = bandOf(a)
	}
	if i := rules.FindOverlap(candidate, bands); i >= 0 {
		return overlapConflict(active[i])
	}
	return nil
}

func mapRateWriteErr(err error) error {
	if helper.IsExclusionViolation(err) {
		return helper.Conflict("Distance range overlaps with existing rate", "نطاق المسافة يتداخل مع سعر موجود")
	}
	return err
}

func checkRates(rate decimal.Decimal, perKm decimal.NullDecimal) error {
	if rate.IsNegative() {
		return helper.BadRequest("rate must not be negative", "يجب ألا يكون السعر سالباً")
	}
	return rules.EnsureNonNegative("ratePerKm", perKm)
}

func (s *DistanceRateService) Create(ctx context.Context, req dto.CreateDistanceRateRequest) (*m.DistanceRate, error) {
	rec := req.ToModel()
	band := bandOf(rec)
	if !band.Valid() {
		return nil, errInvalidRange()
	}
	if err := checkRates(rec.DistanceRateRate, rec.DistanceRateRatePerKm); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNoOverlap(tx, band, uuid.Nil); err != nil {
			return err
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, mapRateWriteErr(err)
	}
	s.Log.Info("distance rate created",
		zap.String("id", rec.DistanceRateID.String()),
		zap.Float64("from_km", rec.DistanceRateFromKm),
		zap.Float64("to_km", rec.DistanceRateToKm))
	return &rec, nil
}

func (s *DistanceRateService) List(ctx context.Context, includeInactive bool) ([]m.DistanceRate, error) {
	var out []m.DistanceRate
	q := s.DB.WithContext(ctx).Model(&m.DistanceRate{})
	if !includeInactive {
		q = q.Where("distance_rate_is_active = ?", true)
	}
	err := q.Order("distance_rate_from_km ASC").Find(&out).Error
	return out, err
}

func (s *DistanceRateService) Get(ctx context.Context, id uuid.UUID) (*m.DistanceRate, error) {
	var rec m.DistanceRate
	err := s.DB.WithContext(ctx).Where("distance_rate_id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errRateNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update resolves the effective band from the patch and the stored row.
// The overlap scan runs when the band moves or the row is re-activated.
func (s *DistanceRateService) Update(ctx context.Context, id uuid.UUID, req dto.PatchDistanceRateRequest) (*m.DistanceRate, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	band := bandOf(*cur)
	if req.FromKm != nil {
		band.FromKm = *req.FromKm
	}
	if req.ToKm != nil {
		band.ToKm = *req.ToKm
	}
	if !band.Valid() {
		return nil, errInvalidRange()
	}

	rate := cur.DistanceRateRate
	if req.Rate != nil {
		rate = *req.Rate
	}
	perKm := cur.DistanceRateRatePerKm
	if req.RatePerKm.Set {
		perKm = req.RatePerKm.Value
	}
	if err := checkRates(rate, perKm); err != nil {
		return nil, err
	}

	moved := band != bandOf(*cur)
	reactivated := req.IsActive != nil && *req.IsActive && !cur.DistanceRateIsActive

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if moved || reactivated {
			if err := ensureNoOverlap(tx, band, id); err != nil {
				return err
			}
		}
		updates := req.Updates()
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&m.DistanceRate{}).Where("distance_rate_id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, mapRateWriteErr(err)
	}
	s.Log.Info("distance rate updated", zap.String("id", id.String()), zap.Bool("band_changed", moved))
	return s.Get(ctx, id)
}

func (s *DistanceRateService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Delete(&m.DistanceRate{}, "distance_rate_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errRateNotFound()
	}
	s.Log.Info("distance rate deleted", zap.String("id", id.String()))
	return nil
}

// Quote prices a trip: rate + ratePerKm × km of the active band containing km.
func (s *DistanceRateService) Quote(ctx context.Context, km float64) (*dto.QuoteDTO, error) {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return nil, helper.BadRequest("distance must be a finite number", "يجب أن تكون المسافة رقماً محدداً")
	}
	if km < 0 {
		return nil, helper.BadRequest("distance must not be negative", "يجب ألا تكون المسافة سالبة")
	}
	var band m.DistanceRate
	err := s.DB.WithContext(ctx).
		Where("distance_rate_is_active = ?", true).
		Where("distance_rate_from_km <= ? AND distance_rate_to_km > ?", km, km).
		Order("distance_rate_from_km ASC").
		First(&band).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, helper.NotFound(
			fmt.Sprintf("No distance rate covers %g km", km),
			fmt.Sprintf("لا يوجد سعر يغطي مسافة %g كم", km),
		)
	}
	if err != nil {
		return nil, err
	}

	total := band.DistanceRateRate
	if band.DistanceRateRatePerKm.Valid {
		total = total.Add(band.DistanceRateRatePerKm.Decimal.Mul(decimal.NewFromFloat(km)))
	}
	q := &dto.QuoteDTO{
		DistanceKm:     km,
		DistanceRateID: band.DistanceRateID,
		FromKm:         band.DistanceRateFromKm,
		ToKm:           band.DistanceRateToKm,
		Rate:           band.DistanceRateRate,
		Total:          total.Round(2),
	}
	if band.DistanceRateRatePerKm.Valid {
		v := band.DistanceRateRatePerKm.Decimal
		q.RatePerKm = &v
	}
	return q, nil
}
