package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labsuite_backend/internals/constants"
	"labsuite_backend/internals/helpers/authz"
)

const testSecret = "test-secret"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func validClaims(role string, perms ...string) jwt.MapClaims {
	c := jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	if len(perms) > 0 {
		c["permissions"] = perms
	}
	return c
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	a, err := authz.NewFromFile("")
	require.NoError(t, err)
	can := RequirePermission(a, nil)

	app := fiber.New()
	app.Use(AuthJWT(testSecret, nil))
	app.Get("/read", can(constants.PermSettingsRead), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(authz.LocRole).(string))
	})
	app.Delete("/delete", can(constants.PermSettingsDelete), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthJWTRejects(t *testing.T) {
	app := newApp(t)

	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/read", ""))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/read", "not-a-jwt"))
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/read", sign(t, "other-secret", validClaims("admin"))))

	expired := validClaims("admin")
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/read", sign(t, testSecret, expired)))

	noExp := validClaims("admin")
	delete(noExp, "exp")
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/read", sign(t, testSecret, noExp)))

	badID := validClaims("admin")
	badID["id"] = "nope"
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/read", sign(t, testSecret, badID)))
}

func TestAuthJWTExpirySkew(t *testing.T) {
	app := newApp(t)
	c := validClaims("viewer")
	c["exp"] = time.Now().Add(-10 * time.Second).Unix()
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/read", sign(t, testSecret, c)))
}

func TestRequirePermissionByRole(t *testing.T) {
	app := newApp(t)

	viewer := sign(t, testSecret, validClaims("viewer"))
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/read", viewer))
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "DELETE", "/delete", viewer))

	admin := sign(t, testSecret, validClaims("admin"))
	assert.Equal(t, fiber.StatusOK, do(t, app, "DELETE", "/delete", admin))
}

func TestRequirePermissionByClaim(t *testing.T) {
	app := newApp(t)
	tok := sign(t, testSecret, validClaims("viewer", constants.PermSettingsDelete))
	assert.Equal(t, fiber.StatusOK, do(t, app, "DELETE", "/delete", tok))

	// unknown role with no claims
	tok = sign(t, testSecret, validClaims(""))
	assert.Equal(t, fiber.StatusForbidden, do(t, app, "GET", "/read", tok))
}

func TestCookieFallback(t *testing.T) {
	app := newApp(t)
	req := httptest.NewRequest("GET", "/read", nil)
	req.Header.Set("Cookie", "access_token="+sign(t, testSecret, validClaims("manager")))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequirePermissionWithoutAuth(t *testing.T) {
	a, err := authz.NewFromFile("")
	require.NoError(t, err)
	app := fiber.New()
	app.Get("/x", RequirePermission(a, nil)(constants.PermSettingsRead), func(c *fiber.Ctx) error { return nil })
	assert.Equal(t, fiber.StatusUnauthorized, do(t, app, "GET", "/x", ""))
}
