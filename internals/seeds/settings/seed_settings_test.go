package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labsuite_backend/internals/databases/testdb"
	lookups "labsuite_backend/internals/features/settings/lookups/model"
	sysset "labsuite_backend/internals/features/settings/system_settings/model"
)

func TestSeedIsIdempotent(t *testing.T) {
	db := testdb.Open(t, &lookups.LookupCategory{}, &lookups.LookupItem{}, &sysset.SystemSetting{})

	first, err := Seed(db, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Categories)
	assert.Equal(t, 10, first.Items)
	assert.Equal(t, 5, first.Settings)

	second, err := Seed(db, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)

	var cat lookups.LookupCategory
	require.NoError(t, db.Preload("Items").Where("lookup_category_code = ?", "PAYMENT_METHODS").First(&cat).Error)
	assert.True(t, cat.LookupCategoryIsSystem)
	require.Len(t, cat.Items, 3)

	defaults := 0
	for _, it := range cat.Items {
		if it.LookupItemIsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSeededSettingsCoerce(t *testing.T) {
	db := testdb.Open(t, &lookups.LookupCategory{}, &lookups.LookupItem{}, &sysset.SystemSetting{})
	_, err := Seed(db, nil)
	require.NoError(t, err)

	var rows []sysset.SystemSetting
	require.NoError(t, db.Find(&rows).Error)
	for _, r := range rows {
		_, err := r.Typed()
		assert.NoError(t, err, r.SystemSettingKey)
		assert.True(t, r.SystemSettingIsSystem)
	}
}
