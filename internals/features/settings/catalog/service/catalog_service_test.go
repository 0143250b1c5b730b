package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"labsuite_backend/internals/databases/testdb"
	dto "labsuite_backend/internals/features/settings/catalog/dto"
	m "labsuite_backend/internals/features/settings/catalog/model"
	helper "labsuite_backend/internals/helpers"
)

func openCatalog(t *testing.T) *gorm.DB {
	return testdb.Open(t, &m.TestType{}, &m.SampleType{}, &m.Standard{})
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newTestType(t *testing.T, svc *TestTypeService, code string) *m.TestType {
	t.Helper()
	rec, err := svc.Create(context.Background(), dto.CreateTestTypeRequest{
		Code: code, Name: code + " test", NameAr: "اختبار " + code,
	})
	require.NoError(t, err)
	return rec
}

func TestTestTypeCreateRejectsDuplicateCode(t *testing.T) {
	db := openCatalog(t)
	svc := NewTestTypeService(db, nil)
	ctx := context.Background()

	first := newTestType(t, svc, "CONC-01")
	assert.True(t, first.TestTypeIsActive, "isActive defaults to true")

	_, err := svc.Create(ctx, dto.CreateTestTypeRequest{Code: "CONC-01", Name: "x", NameAr: "x"})
	require.Error(t, err)
	assert.True(t, helper.IsConflict(err))

	var n int64
	db.Model(&m.TestType{}).Count(&n)
	assert.Equal(t, int64(1), n)
}

func TestTestTypeCreateRejectsNegativePrice(t *testing.T) {
	svc := NewTestTypeService(openCatalog(t), nil)
	neg := decimal.NewFromInt(-5)
	_, err := svc.Create(context.Background(), dto.CreateTestTypeRequest{
		Code: "NEG", Name: "n", NameAr: "n", BasePrice: &neg,
	})
	assert.True(t, helper.IsBadRequest(err))
}

func TestTestTypeUpdateUniqueness(t *testing.T) {
	svc := NewTestTypeService(openCatalog(t), nil)
	ctx := context.Background()
	a := newTestType(t, svc, "A")
	newTestType(t, svc, "B")

	// keeping its own code is not a conflict
	got, err := svc.Update(ctx, a.TestTypeID, dto.PatchTestTypeRequest{Code: strPtr("A"), Name: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.TestTypeName)

	_, err = svc.Update(ctx, a.TestTypeID, dto.PatchTestTypeRequest{Code: strPtr("B")})
	assert.True(t, helper.IsConflict(err))

	// no code in the patch: no uniqueness check
	got, err = svc.Update(ctx, a.TestTypeID, dto.PatchTestTypeRequest{SortOrder: new(int)})
	require.NoError(t, err)
	assert.Equal(t, "A", got.TestTypeCode)

	_, err = svc.Update(ctx, uuid.New(), dto.PatchTestTypeRequest{Name: strPtr("x")})
	assert.True(t, helper.IsNotFound(err))
}

func TestTestTypeListHidesInactiveAndOrders(t *testing.T) {
	svc := NewTestTypeService(openCatalog(t), nil)
	ctx := context.Background()
	two, one := 2, 1
	_, err := svc.Create(ctx, dto.CreateTestTypeRequest{Code: "Z", Name: "z", NameAr: "z", SortOrder: &one})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateTestTypeRequest{Code: "Y", Name: "y", NameAr: "y", SortOrder: &two})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateTestTypeRequest{Code: "X", Name: "x", NameAr: "x", SortOrder: &one, IsActive: boolPtr(false)})
	require.NoError(t, err)

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Z", active[0].TestTypeCode)
	assert.Equal(t, "Y", active[1].TestTypeCode)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "X", all[0].TestTypeCode)
}

func TestTestTypeDeleteCascadesSampleTypesAndLinks(t *testing.T) {
	db := openCatalog(t)
	tts := NewTestTypeService(db, nil)
	sts := NewSampleTypeService(db, nil)
	sds := NewStandardService(db, nil)
	ctx := context.Background()

	tt := newTestType(t, tts, "SOIL")
	other := newTestType(t, tts, "ROCK")
	_, err := sts.Create(ctx, dto.CreateSampleTypeRequest{TestTypeID: tt.TestTypeID, Code: "S1", Name: "s", NameAr: "s"})
	require.NoError(t, err)
	_, err = sts.Create(ctx, dto.CreateSampleTypeRequest{TestTypeID: other.TestTypeID, Code: "S2", Name: "s", NameAr: "s"})
	require.NoError(t, err)
	std, err := sds.Create(ctx, dto.CreateStandardRequest{
		Code: "ASTM-1", Name: "a", NameAr: "a", Type: "ASTM",
		TestTypeIDs: []uuid.UUID{tt.TestTypeID, other.TestTypeID},
	})
	require.NoError(t, err)

	require.NoError(t, tts.Delete(ctx, tt.TestTypeID))

	_, err = tts.Get(ctx, tt.TestTypeID)
	assert.True(t, helper.IsNotFound(err))

	var left []m.SampleType
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "S2", left[0].SampleTypeCode)

	linked, err := sds.Get(ctx, std.StandardID)
	require.NoError(t, err)
	require.Len(t, linked.TestTypes, 1)
	assert.Equal(t, other.TestTypeID, linked.TestTypes[0].TestTypeID)

	assert.True(t, helper.IsNotFound(tts.Delete(ctx, tt.TestTypeID)))
}

func TestSampleTypeReferentialCheck(t *testing.T) {
	db := openCatalog(t)
	sts := NewSampleTypeService(db, nil)
	ctx := context.Background()

	_, err := sts.Create(ctx, dto.CreateSampleTypeRequest{TestTypeID: uuid.New(), Code: "S1", Name: "s", NameAr: "s"})
	require.Error(t, err)
	assert.True(t, helper.IsBadRequest(err))
	assert.Equal(t, "Test type not found", err.Error())

	tt := newTestType(t, NewTestTypeService(db, nil), "T")
	price := decimal.RequireFromString("12.50")
	rec, err := sts.Create(ctx, dto.CreateSampleTypeRequest{TestTypeID: tt.TestTypeID, Code: "S1", Name: "s", NameAr: "s", PricePerUnit: &price})
	require.NoError(t, err)
	require.NotNil(t, rec.TestType)
	assert.Equal(t, "T", rec.TestType.TestTypeCode)
	assert.True(t, rec.SampleTypePricePerUnit.Decimal.Equal(price))

	missing := uuid.New()
	_, err = sts.Update(ctx, rec.SampleTypeID, dto.PatchSampleTypeRequest{TestTypeID: &missing})
	assert.True(t, helper.IsBadRequest(err))

	_, err = sts.Create(ctx, dto.CreateSampleTypeRequest{TestTypeID: tt.TestTypeID, Code: "S1", Name: "dup", NameAr: "dup"})
	assert.True(t, helper.IsConflict(err))
}

func TestSampleTypeListFilters(t *testing.T) {
	db := openCatalog(t)
	sts := NewSampleTypeService(db, nil)
	tts := NewTestTypeService(db, nil)
	ctx := context.Background()
	a := newTestType(t, tts, "A")
	b := newTestType(t, tts, "B")
	for i, tt := range []*m.TestType{a, a, b} {
		_, err := sts.Create(ctx, dto.CreateSampleTypeRequest{
			TestTypeID: tt.TestTypeID, Code: "S" + string(rune('1'+i)), Name: "s", NameAr: "s",
		})
		require.NoError(t, err)
	}

	rows, err := sts.List(ctx, SampleTypeFilter{TestTypeID: &a.TestTypeID})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = sts.List(ctx, SampleTypeFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestStandardRejectsUnknownTestTypes(t *testing.T) {
	db := openCatalog(t)
	sds := NewStandardService(db, nil)
	ctx := context.Background()
	tt := newTestType(t, NewTestTypeService(db, nil), "T")
	ghost := uuid.New()

	_, err := sds.Create(ctx, dto.CreateStandardRequest{
		Code: "BS-1", Name: "b", NameAr: "b", Type: "BRITISH",
		TestTypeIDs: []uuid.UUID{tt.TestTypeID, ghost},
	})
	require.Error(t, err)
	assert.True(t, helper.IsBadRequest(err))
	assert.Contains(t, err.Error(), ghost.String())

	var n int64
	db.Model(&m.Standard{}).Count(&n)
	assert.Zero(t, n)
}

func TestStandardUpdateReplacesLinks(t *testing.T) {
	db := openCatalog(t)
	sds := NewStandardService(db, nil)
	tts := NewTestTypeService(db, nil)
	ctx := context.Background()
	a := newTestType(t, tts, "A")
	b := newTestType(t, tts, "B")

	std, err := sds.Create(ctx, dto.CreateStandardRequest{
		Code: "ISO-9", Name: "i", NameAr: "i", Type: "ISO", TestTypeIDs: []uuid.UUID{a.TestTypeID},
	})
	require.NoError(t, err)
	require.Len(t, std.TestTypes, 1)

	// absent: links untouched
	got, err := sds.Update(ctx, std.StandardID, dto.PatchStandardRequest{Name: strPtr("ISO 9")})
	require.NoError(t, err)
	require.Len(t, got.TestTypes, 1)

	ids := []uuid.UUID{b.TestTypeID}
	got, err = sds.Update(ctx, std.StandardID, dto.PatchStandardRequest{TestTypeIDs: &ids})
	require.NoError(t, err)
	require.Len(t, got.TestTypes, 1)
	assert.Equal(t, b.TestTypeID, got.TestTypes[0].TestTypeID)

	empty := []uuid.UUID{}
	got, err = sds.Update(ctx, std.StandardID, dto.PatchStandardRequest{TestTypeIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, got.TestTypes)

	// the test types themselves survive
	var n int64
	db.Model(&m.TestType{}).Count(&n)
	assert.Equal(t, int64(2), n)
}

func TestStandardListByType(t *testing.T) {
	sds := NewStandardService(openCatalog(t), nil)
	ctx := context.Background()
	for _, c := range []struct{ code, typ string }{{"E1", "EGYPTIAN"}, {"A1", "ASTM"}, {"A2", "ASTM"}} {
		_, err := sds.Create(ctx, dto.CreateStandardRequest{Code: c.code, Name: c.code, NameAr: c.code, Type: c.typ})
		require.NoError(t, err)
	}
	astm := "astm"
	rows, err := sds.List(ctx, StandardFilter{Type: &astm})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
