package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchDistanceRateRatePerKmPresence(t *testing.T) {
	var absent PatchDistanceRateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"rate":"5"}`), &absent))
	assert.False(t, absent.RatePerKm.Set)
	assert.NotContains(t, absent.Updates(), "distance_rate_rate_per_km")

	var cleared PatchDistanceRateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ratePerKm":null}`), &cleared))
	assert.True(t, cleared.RatePerKm.Set)
	v, ok := cleared.Updates()["distance_rate_rate_per_km"]
	require.True(t, ok)
	assert.Nil(t, v)

	var set PatchDistanceRateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"ratePerKm":"1.5"}`), &set))
	require.True(t, set.RatePerKm.Value.Valid)
	got, ok := set.Updates()["distance_rate_rate_per_km"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, got.Equal(decimal.RequireFromString("1.5")))
}

func TestDistanceRateNormalizeRoundsBounds(t *testing.T) {
	from, to := 1.234, 7.899
	req := CreateDistanceRateRequest{FromKm: &from, ToKm: &to}
	req.Normalize()
	assert.Equal(t, 1.23, *req.FromKm)
	assert.Equal(t, 7.9, *req.ToKm)
}
