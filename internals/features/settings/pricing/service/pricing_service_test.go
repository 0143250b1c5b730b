package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"labsuite_backend/internals/databases/testdb"
	dto "labsuite_backend/internals/features/settings/pricing/dto"
	m "labsuite_backend/internals/features/settings/pricing/model"
	helper "labsuite_backend/internals/helpers"
)

func openPricing(t *testing.T) *gorm.DB {
	return testdb.Open(t, &m.PriceList{}, &m.PriceListItem{}, &m.DistanceRate{}, &m.MixerType{})
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func f64(v float64) *float64 { return &v }
func boolPtr(b bool) *bool   { return &b }
func strPtr(s string) *string {
	return &s
}

func item(code, price string) dto.CreatePriceListItemRequest {
	return dto.CreatePriceListItemRequest{Code: code, Name: code, NameAr: code, Price: dec(price)}
}

func newList(t *testing.T, svc *PriceListService, code, category string, isDefault bool, items ...dto.CreatePriceListItemRequest) *m.PriceList {
	t.Helper()
	rec, err := svc.Create(context.Background(), dto.CreatePriceListRequest{
		Code: code, Name: code, NameAr: code, Category: category,
		IsDefault: boolPtr(isDefault), Items: items,
	})
	require.NoError(t, err)
	return rec
}

/* =========================
   Price lists
   ========================= */

func TestPriceListCreateWithItems(t *testing.T) {
	svc := NewPriceListService(openPricing(t), nil)
	two := 2
	b := item("B", "20")
	b.SortOrder = &two

	rec := newList(t, svc, "PL-1", "LAB_TESTS", false, b, item("A", "10.50"))
	assert.Equal(t, "EGP", rec.PriceListCurrency)
	require.Len(t, rec.Items, 2)
	assert.Equal(t, "A", rec.Items[0].PriceListItemCode, "items ordered by sortOrder")
	assert.True(t, rec.Items[0].PriceListItemPrice.Equal(decimal.RequireFromString("10.5")))
}

func TestPriceListCreateRejectsDuplicateItemCodesInPayload(t *testing.T) {
	db := openPricing(t)
	svc := NewPriceListService(db, nil)
	_, err := svc.Create(context.Background(), dto.CreatePriceListRequest{
		Code: "PL", Name: "p", NameAr: "p", Category: "OTHER",
		Items: []dto.CreatePriceListItemRequest{item("A", "1"), item("A", "2")},
	})
	assert.True(t, helper.IsConflict(err))

	var n int64
	db.Model(&m.PriceList{}).Count(&n)
	assert.Zero(t, n)
}

func TestPriceListItemCodeScopedToList(t *testing.T) {
	svc := NewPriceListService(openPricing(t), nil)
	ctx := context.Background()
	one := newList(t, svc, "PL-1", "LAB_TESTS", false, item("A", "10"))
	two := newList(t, svc, "PL-2", "LAB_TESTS", false)

	// same code, other list: fine
	_, err := svc.AddItem(ctx, two.PriceListID, item("A", "12"))
	require.NoError(t, err)

	// same code, same list: conflict
	_, err = svc.AddItem(ctx, one.PriceListID, item("A", "11"))
	assert.True(t, helper.IsConflict(err))

	_, err = svc.AddItem(ctx, uuid.New(), item("Z", "1"))
	assert.True(t, helper.IsNotFound(err))
}

func TestPriceListItemCodesCompareExactly(t *testing.T) {
	svc := NewPriceListService(openPricing(t), nil)
	ctx := context.Background()

	// nested create and AddItem agree: codes differing only in case are distinct
	both := newList(t, svc, "PL-1", "LAB_TESTS", false, item("a", "1"), item("A", "2"))
	assert.Len(t, both.Items, 2)

	pl := newList(t, svc, "PL-2", "LAB_TESTS", false, item("a", "1"))
	_, err := svc.AddItem(ctx, pl.PriceListID, item("A", "2"))
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, pl.PriceListID, item("a", "3"))
	assert.True(t, helper.IsConflict(err))
}

func TestPriceListItemUpdateAndDelete(t *testing.T) {
	svc := NewPriceListService(openPricing(t), nil)
	ctx := context.Background()
	pl := newList(t, svc, "PL", "TRANSPORT", false, item("A", "10"), item("B", "20"))
	a := pl.Items[0]

	_, err := svc.UpdateItem(ctx, pl.PriceListID, a.PriceListItemID, dto.PatchPriceListItemRequest{Code: strPtr("B")})
	assert.True(t, helper.IsConflict(err))

	got, err := svc.UpdateItem(ctx, pl.PriceListID, a.PriceListItemID, dto.PatchPriceListItemRequest{Price: dec("15")})
	require.NoError(t, err)
	assert.True(t, got.PriceListItemPrice.Equal(decimal.NewFromInt(15)))

	_, err = svc.UpdateItem(ctx, pl.PriceListID, a.PriceListItemID, dto.PatchPriceListItemRequest{Price: dec("-1")})
	assert.True(t, helper.IsBadRequest(err))

	// an item is addressed through its own list only
	_, err = svc.UpdateItem(ctx, uuid.New(), a.PriceListItemID, dto.PatchPriceListItemRequest{Price: dec("1")})
	assert.True(t, helper.IsNotFound(err))

	require.NoError(t, svc.DeleteItem(ctx, pl.PriceListID, a.PriceListItemID))
	assert.True(t, helper.IsNotFound(svc.DeleteItem(ctx, pl.PriceListID, a.PriceListItemID)))
}

func countDefaults(t *testing.T, db *gorm.DB, category string) int64 {
	var n int64
	require.NoError(t, db.Model(&m.PriceList{}).
		Where("price_list_category = ? AND price_list_is_default = ?", category, true).
		Count(&n).Error)
	return n
}

func TestPriceListExclusiveDefaultPerCategory(t *testing.T) {
	db := openPricing(t)
	svc := NewPriceListService(db, nil)
	ctx := context.Background()

	a := newList(t, svc, "A", "LAB_TESTS", true)
	b := newList(t, svc, "B", "LAB_TESTS", true)
	c := newList(t, svc, "C", "CONCRETE", true)

	assert.Equal(t, int64(1), countDefaults(t, db, "LAB_TESTS"))
	got, err := svc.Get(ctx, a.PriceListID)
	require.NoError(t, err)
	assert.False(t, got.PriceListIsDefault)

	// flag A again through update
	got, err = svc.Update(ctx, a.PriceListID, dto.PatchPriceListRequest{IsDefault: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, got.PriceListIsDefault)
	got, _ = svc.Get(ctx, b.PriceListID)
	assert.False(t, got.PriceListIsDefault)

	// moving a default into another category demotes that category's default
	_, err = svc.Update(ctx, a.PriceListID, dto.PatchPriceListRequest{Category: strPtr("CONCRETE")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countDefaults(t, db, "CONCRETE"))
	got, _ = svc.Get(ctx, c.PriceListID)
	assert.False(t, got.PriceListIsDefault)
	assert.Equal(t, int64(0), countDefaults(t, db, "LAB_TESTS"))
}

func TestPriceListUpdateCodeUniqueness(t *testing.T) {
	svc := NewPriceListService(openPricing(t), nil)
	ctx := context.Background()
	a := newList(t, svc, "A", "OTHER", false)
	newList(t, svc, "B", "OTHER", false)

	_, err := svc.Update(ctx, a.PriceListID, dto.PatchPriceListRequest{Code: strPtr("B")})
	assert.True(t, helper.IsConflict(err))
	_, err = svc.Update(ctx, a.PriceListID, dto.PatchPriceListRequest{Code: strPtr("A")})
	assert.NoError(t, err)
}

func TestPriceListValidityWindow(t *testing.T) {
	svc := NewPriceListService(openPricing(t), nil)
	ctx := context.Background()
	_, err := svc.Create(ctx, dto.CreatePriceListRequest{
		Code: "W", Name: "w", NameAr: "w", Category: "OTHER",
		ValidFrom: strPtr("2026-06-01"), ValidTo: strPtr("2026-01-01"),
	})
	assert.True(t, helper.IsBadRequest(err))

	rec, err := svc.Create(ctx, dto.CreatePriceListRequest{
		Code: "W", Name: "w", NameAr: "w", Category: "OTHER", ValidFrom: strPtr("2026-01-01"),
	})
	require.NoError(t, err)
	_, err = svc.Update(ctx, rec.PriceListID, dto.PatchPriceListRequest{ValidTo: strPtr("2025-12-31")})
	assert.True(t, helper.IsBadRequest(err))
}

func TestPriceListDeleteCascadesItems(t *testing.T) {
	db := openPricing(t)
	svc := NewPriceListService(db, nil)
	ctx := context.Background()
	pl := newList(t, svc, "PL", "OTHER", false, item("A", "1"), item("B", "2"))
	keep := newList(t, svc, "KEEP", "OTHER", false, item("A", "1"))

	require.NoError(t, svc.Delete(ctx, pl.PriceListID))

	var items []m.PriceListItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, keep.PriceListID, items[0].PriceListItemPriceListID)
	assert.True(t, helper.IsNotFound(svc.Delete(ctx, pl.PriceListID)))
}

/* =========================
   Distance rates
   ========================= */

func rateReq(from, to float64, rate string) dto.CreateDistanceRateRequest {
	return dto.CreateDistanceRateRequest{FromKm: f64(from), ToKm: f64(to), Rate: dec(rate)}
}

func TestDistanceRateRangeRules(t *testing.T) {
	svc := NewDistanceRateService(openPricing(t), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, rateReq(10, 5, "100"))
	assert.True(t, helper.IsBadRequest(err))
	_, err = svc.Create(ctx, rateReq(5, 5, "100"))
	assert.True(t, helper.IsBadRequest(err), "zero-width band is degenerate")

	_, err = svc.Create(ctx, rateReq(0, 10, "100"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, rateReq(10, 20, "150"))
	require.NoError(t, err, "adjacent half-open bands do not overlap")

	_, err = svc.Create(ctx, rateReq(5, 15, "120"))
	require.Error(t, err)
	assert.True(t, helper.IsConflict(err))
	assert.Contains(t, err.Error(), "overlaps with existing rate")
}

func TestDistanceRateInactiveBandsIgnored(t *testing.T) {
	svc := NewDistanceRateService(openPricing(t), nil)
	ctx := context.Background()

	off := rateReq(0, 10, "100")
	off.IsActive = boolPtr(false)
	inactive, err := svc.Create(ctx, off)
	require.NoError(t, err)

	active, err := svc.Create(ctx, rateReq(5, 15, "100"))
	require.NoError(t, err)

	// re-activating the old band would overlap [5,15)
	_, err = svc.Update(ctx, inactive.DistanceRateID, dto.PatchDistanceRateRequest{IsActive: boolPtr(true)})
	assert.True(t, helper.IsConflict(err))

	require.NoError(t, svc.Delete(ctx, active.DistanceRateID))
	got, err := svc.Update(ctx, inactive.DistanceRateID, dto.PatchDistanceRateRequest{IsActive: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, got.DistanceRateIsActive)
}

func TestDistanceRateUpdate(t *testing.T) {
	svc := NewDistanceRateService(openPricing(t), nil)
	ctx := context.Background()
	a, err := svc.Create(ctx, rateReq(0, 10, "100"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, rateReq(10, 20, "150"))
	require.NoError(t, err)

	// effective range uses the stored fromKm
	_, err = svc.Update(ctx, a.DistanceRateID, dto.PatchDistanceRateRequest{ToKm: f64(0)})
	assert.True(t, helper.IsBadRequest(err))

	_, err = svc.Update(ctx, a.DistanceRateID, dto.PatchDistanceRateRequest{ToKm: f64(12)})
	assert.True(t, helper.IsConflict(err))

	// shrinking never collides, and self is excluded from the scan
	got, err := svc.Update(ctx, a.DistanceRateID, dto.PatchDistanceRateRequest{FromKm: f64(2)})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.DistanceRateFromKm)

	// rate-only change skips the scan
	got, err = svc.Update(ctx, a.DistanceRateID, dto.PatchDistanceRateRequest{Rate: dec("90")})
	require.NoError(t, err)
	assert.True(t, got.DistanceRateRate.Equal(decimal.NewFromInt(90)))

	_, err = svc.Update(ctx, uuid.New(), dto.PatchDistanceRateRequest{Rate: dec("1")})
	assert.True(t, helper.IsNotFound(err))
}

func TestDistanceRateQuote(t *testing.T) {
	svc := NewDistanceRateService(openPricing(t), nil)
	ctx := context.Background()
	near := rateReq(0, 10, "100")
	_, err := svc.Create(ctx, near)
	require.NoError(t, err)
	far := rateReq(10, 50, "150")
	far.RatePerKm = dec("2.5")
	farRec, err := svc.Create(ctx, far)
	require.NoError(t, err)

	q, err := svc.Quote(ctx, 9.99)
	require.NoError(t, err)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(100)))

	q, err = svc.Quote(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, farRec.DistanceRateID, q.DistanceRateID, "lower bound is inclusive")
	assert.True(t, q.Total.Equal(decimal.NewFromInt(175)), "150 + 2.5*10, got %s", q.Total)

	_, err = svc.Quote(ctx, 50)
	assert.True(t, helper.IsNotFound(err), "upper bound is exclusive")
	_, err = svc.Quote(ctx, -1)
	assert.True(t, helper.IsBadRequest(err))
	_, err = svc.Quote(ctx, math.NaN())
	assert.True(t, helper.IsBadRequest(err))
	_, err = svc.Quote(ctx, math.Inf(1))
	assert.True(t, helper.IsBadRequest(err))
}

func TestDistanceRateBoundsRoundedToColumnPrecision(t *testing.T) {
	svc := NewDistanceRateService(openPricing(t), nil)
	ctx := context.Background()

	tiny := rateReq(5.001, 5.004, "10")
	tiny.Normalize()
	_, err := svc.Create(ctx, tiny)
	assert.True(t, helper.IsBadRequest(err), "collapses to [5.00, 5.00)")

	req := rateReq(0.004, 10.006, "10")
	req.Normalize()
	rec, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.DistanceRateFromKm)
	assert.Equal(t, 10.01, rec.DistanceRateToKm)

	patch := dto.PatchDistanceRateRequest{ToKm: f64(0.001)}
	patch.Normalize()
	_, err = svc.Update(ctx, rec.DistanceRateID, patch)
	assert.True(t, helper.IsBadRequest(err))
}

func TestDistanceRateClearRatePerKm(t *testing.T) {
	svc := NewDistanceRateService(openPricing(t), nil)
	ctx := context.Background()
	req := rateReq(0, 10, "100")
	req.RatePerKm = dec("2")
	rec, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.True(t, rec.DistanceRateRatePerKm.Valid)

	// absent keeps the stored rate
	got, err := svc.Update(ctx, rec.DistanceRateID, dto.PatchDistanceRateRequest{Rate: dec("90")})
	require.NoError(t, err)
	assert.True(t, got.DistanceRateRatePerKm.Valid)

	got, err = svc.Update(ctx, rec.DistanceRateID, dto.PatchDistanceRateRequest{RatePerKm: dto.OptionalDecimal{Set: true}})
	require.NoError(t, err)
	assert.False(t, got.DistanceRateRatePerKm.Valid)

	q, err := svc.Quote(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, q.RatePerKm)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(90)))
}

/* =========================
   Mixer types
   ========================= */

func TestMixerTypeCRUD(t *testing.T) {
	svc := NewMixerTypeService(openPricing(t), nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, dto.CreateMixerTypeRequest{Code: "MX-6", Name: "6 m3", NameAr: "٦ م٣", Capacity: dec("6")})
	require.NoError(t, err)
	assert.False(t, rec.MixerTypePricePerBatch.Valid)

	_, err = svc.Create(ctx, dto.CreateMixerTypeRequest{Code: "MX-6", Name: "dup", NameAr: "dup"})
	assert.True(t, helper.IsConflict(err))

	_, err = svc.Create(ctx, dto.CreateMixerTypeRequest{Code: "MX-NEG", Name: "n", NameAr: "n", PricePerBatch: dec("-3")})
	assert.True(t, helper.IsBadRequest(err))

	got, err := svc.Update(ctx, rec.MixerTypeID, dto.PatchMixerTypeRequest{PricePerBatch: dec("450")})
	require.NoError(t, err)
	require.True(t, got.MixerTypePricePerBatch.Valid)
	assert.True(t, got.MixerTypePricePerBatch.Decimal.Equal(decimal.NewFromInt(450)))

	list, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, rec.MixerTypeID))
	_, err = svc.Get(ctx, rec.MixerTypeID)
	assert.True(t, helper.IsNotFound(err))
}
