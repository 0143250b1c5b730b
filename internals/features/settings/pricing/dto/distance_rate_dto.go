package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	m "labsuite_backend/internals/features/settings/pricing/model"
)

type DistanceRateDTO struct {
	ID            uuid.UUID        `json:"id"`
	FromKm        float64          `json:"fromKm"`
	ToKm          float64          `json:"toKm"`
	Rate          decimal.Decimal  `json:"rate"`
	RatePerKm     *decimal.Decimal `json:"ratePerKm"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func FromDistanceRate(d m.DistanceRate) DistanceRateDTO {
	return DistanceRateDTO{
		ID:            d.DistanceRateID,
		FromKm:        d.DistanceRateFromKm,
		ToKm:          d.DistanceRateToKm,
		Rate:          d.DistanceRateRate,
		RatePerKm:     nullDecimalPtr(d.DistanceRateRatePerKm),
		Description:   d.DistanceRateDescription,
		DescriptionAr: d.DistanceRateDescriptionAr,
		IsActive:      d.DistanceRateIsActive,
		CreatedAt:     d.DistanceRateCreatedAt,
		UpdatedAt:     d.DistanceRateUpdatedAt,
	}
}

func FromDistanceRates(xs []m.DistanceRate) []DistanceRateDTO {
	out := make([]DistanceRateDTO, 0, len(xs))
	for _, it := range xs {
		out = append(out, FromDistanceRate(it))
	}
	return out
}

// QuoteDTO is the transport charge for one distance.
type QuoteDTO struct {
	DistanceKm     float64          `json:"distanceKm"`
	DistanceRateID uuid.UUID        `json:"distanceRateId"`
	FromKm         float64          `json:"fromKm"`
	ToKm           float64          `json:"toKm"`
	Rate           decimal.Decimal  `json:"rate"`
	RatePerKm      *decimal.Decimal `json:"ratePerKm"`
	Total          decimal.Decimal  `json:"total"`
}

// fromKm/toKm are pointers so that 0 is distinguishable from absent.
type CreateDistanceRateRequest struct {
	FromKm        *float64         `json:"fromKm" validate:"required,gte=0"`
	ToKm          *float64         `json:"toKm" validate:"required,gte=0"`
	Rate          *decimal.Decimal `json:"rate" validate:"required"`
	RatePerKm     *decimal.Decimal `json:"ratePerKm,omitempty"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

func (r *CreateDistanceRateRequest) Normalize() {
	roundKm(r.FromKm)
	roundKm(r.ToKm)
	trimPtr(r.Description)
	trimPtr(r.DescriptionAr)
}

func (r CreateDistanceRateRequest) ToModel() m.DistanceRate {
	d := m.DistanceRate{
		DistanceRateRatePerKm:     toNullDecimal(r.RatePerKm),
		DistanceRateDescription:   r.Description,
		DistanceRateDescriptionAr: r.DescriptionAr,
		DistanceRateIsActive:      boolOr(r.IsActive, true),
	}
	if r.FromKm != nil {
		d.DistanceRateFromKm = *r.FromKm
	}
	if r.ToKm != nil {
		d.DistanceRateToKm = *r.ToKm
	}
	if r.Rate != nil {
		d.DistanceRateRate = *r.Rate
	}
	return d
}

type PatchDistanceRateRequest struct {
	FromKm        *float64         `json:"fromKm,omitempty" validate:"omitempty,gte=0"`
	ToKm          *float64         `json:"toKm,omitempty" validate:"omitempty,gte=0"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	// null clears the per-km rate
	RatePerKm     OptionalDecimal  `json:"ratePerKm"`
	Description   *string          `json:"description,omitempty"`
	DescriptionAr *string          `json:"descriptionAr,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

func (p *PatchDistanceRateRequest) Normalize() {
	roundKm(p.FromKm)
	roundKm(p.ToKm)
	trimPtr(p.Description)
	trimPtr(p.DescriptionAr)
}

func (p PatchDistanceRateRequest) Updates() map[string]any {
	u := map[string]any{}
	if p.FromKm != nil {
		u["distance_rate_from_km"] = *p.FromKm
	}
	if p.ToKm != nil {
		u["distance_rate_to_km"] = *p.ToKm
	}
	if p.Rate != nil {
		u["distance_rate_rate"] = *p.Rate
	}
	if p.RatePerKm.Set {
		u["distance_rate_rate_per_km"] = p.RatePerKm.update()
	}
	if p.Description != nil {
		u["distance_rate_description"] = emptyToNil(p.Description)
	}
	if p.DescriptionAr != nil {
		u["distance_rate_description_ar"] = emptyToNil(p.DescriptionAr)
	}
	if p.IsActive != nil {
		u["distance_rate_is_active"] = *p.IsActive
	}
	return u
}
