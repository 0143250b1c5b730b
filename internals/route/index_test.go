package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "labsuite_backend/internals/databases"
	"labsuite_backend/internals/databases/testdb"
	helper "labsuite_backend/internals/helpers"
	"labsuite_backend/internals/helpers/authz"
	"labsuite_backend/internals/seeds"
)

const secret = "route-test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testdb.Open(t)
	require.NoError(t, database.Migrate(db, nil))
	require.NoError(t, seeds.RunAllSeeds(db, nil))

	a, err := authz.NewFromFile("")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler(nil)})
	SetupRoutes(app, db, nil, a, secret)
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func send(t *testing.T, app *fiber.App, method, path, tok, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func TestPublicSettingsWithoutToken(t *testing.T) {
	app := newTestApp(t)

	code, raw := send(t, app, http.MethodGet, "/api/settings/system/public", "", "")
	require.Equal(t, fiber.StatusOK, code, string(raw))

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "EGP", got["default_currency"])
	assert.Equal(t, false, got["maintenance_mode"])
	assert.NotContains(t, got, "vat_rate")
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newTestApp(t)

	code, _ := send(t, app, http.MethodGet, "/api/settings/system", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = send(t, app, http.MethodPost, "/api/settings/test-types", "", `{"code":"X","name":"x","nameAr":"x"}`)
	assert.Equal(t, fiber.StatusUnauthorized, code)
}

func TestPermissionsPerRole(t *testing.T) {
	app := newTestApp(t)
	viewer := token(t, "viewer")
	admin := token(t, "admin")

	code, _ := send(t, app, http.MethodGet, "/api/settings/system/vat_rate/value", viewer, "")
	assert.Equal(t, fiber.StatusOK, code)

	body := `{"code":"CONC-COMP","name":"Concrete compression","nameAr":"ضغط الخرسانة","basePrice":"150.00"}`
	code, _ = send(t, app, http.MethodPost, "/api/settings/test-types", viewer, body)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, raw := send(t, app, http.MethodPost, "/api/settings/test-types", admin, body)
	require.Equal(t, fiber.StatusCreated, code, string(raw))

	code, _ = send(t, app, http.MethodPost, "/api/settings/test-types", admin, body)
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = send(t, app, http.MethodDelete, "/api/settings/system/company_name", admin, "")
	assert.Equal(t, fiber.StatusBadRequest, code, "seeded settings are system rows")
}

func TestSettingValueEndpoint(t *testing.T) {
	app := newTestApp(t)
	tok := token(t, "viewer")

	code, raw := send(t, app, http.MethodGet, "/api/settings/system/vat_rate/value", tok, "")
	require.Equal(t, fiber.StatusOK, code)
	var got struct {
		Key   string `json:"key"`
		Value any    `json:"value"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, float64(14), got.Value)

	code, raw = send(t, app, http.MethodGet, "/api/settings/system/nope/value?default=7", tok, "")
	require.Equal(t, fiber.StatusOK, code)
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "7", got.Value)

	code, _ = send(t, app, http.MethodGet, "/api/settings/system/nope/value", tok, "")
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestBulkUpdateEndpoint(t *testing.T) {
	app := newTestApp(t)
	tok := token(t, "manager")

	code, raw := send(t, app, http.MethodPatch, "/api/settings/system", tok,
		`{"settings":[{"key":"vat_rate","value":"10"},{"key":"missing_key","value":"y"},{"key":"default_currency","value":"egp"}]}`)
	require.Equal(t, fiber.StatusOK, code, string(raw))

	var res []struct {
		Key     string `json:"key"`
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &res))
	require.Len(t, res, 3)
	assert.True(t, res[0].Success)
	assert.False(t, res[1].Success)
	assert.False(t, res[2].Success)
	assert.Contains(t, res[2].Error, "does not match validation rule")

	code, _ = send(t, app, http.MethodPatch, "/api/settings/system", tok, `{"settings":[]}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestDistanceRateEndpoints(t *testing.T) {
	app := newTestApp(t)
	admin := token(t, "admin")

	code, raw := send(t, app, http.MethodPost, "/api/settings/distance-rates", admin,
		`{"fromKm":0,"toKm":10,"rate":"100","ratePerKm":"2"}`)
	require.Equal(t, fiber.StatusCreated, code, string(raw))
	var created struct {
		ID        string `json:"id"`
		RatePerKm any    `json:"ratePerKm"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotNil(t, created.RatePerKm)

	code, raw = send(t, app, http.MethodPatch, "/api/settings/distance-rates/"+created.ID, admin, `{"ratePerKm":null}`)
	require.Equal(t, fiber.StatusOK, code, string(raw))
	var patched map[string]any
	require.NoError(t, json.Unmarshal(raw, &patched))
	assert.Nil(t, patched["ratePerKm"])

	for _, km := range []string{"abc", "NaN", "Inf", "%2BInf", "-Inf"} {
		code, _ = send(t, app, http.MethodGet, "/api/settings/distance-rates/quote?km="+km, admin, "")
		assert.Equal(t, fiber.StatusBadRequest, code, km)
	}
	code, _ = send(t, app, http.MethodGet, "/api/settings/distance-rates/quote?km=5", admin, "")
	assert.Equal(t, fiber.StatusOK, code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	code, raw := send(t, app, http.MethodGet, "/health", "", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(raw), `"database":"Connected"`)
}
