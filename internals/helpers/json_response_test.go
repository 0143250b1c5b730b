package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func call(t *testing.T, app *fiber.App, path string) (int, ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestFromErrorMapping(t *testing.T) {
	app := fiber.New()
	errs := map[string]error{
		"/app":      Conflict("code taken", "الرمز مستخدم"),
		"/wrapped":  fmt.Errorf("create: %w", NotFound("missing", "مفقود")),
		"/notfound": gorm.ErrRecordNotFound,
		"/unique":   errors.New(`ERROR: duplicate key value violates unique constraint "uq_x" (SQLSTATE 23505)`),
		"/fiber":    fiber.NewError(fiber.StatusTeapot, "teapot"),
		"/other":    errors.New("boom"),
	}
	for path, e := range errs {
		e := e
		app.Get(path, func(c *fiber.Ctx) error { return FromError(c, nil, e) })
	}

	code, body := call(t, app, "/app")
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "code taken", body.Message)
	assert.Equal(t, "الرمز مستخدم", body.MessageAr)
	assert.Equal(t, "CONFLICT", body.ErrorCode)
	assert.False(t, body.Success)

	code, body = call(t, app, "/wrapped")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)

	code, _ = call(t, app, "/notfound")
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = call(t, app, "/unique")
	assert.Equal(t, fiber.StatusConflict, code)

	code, _ = call(t, app, "/fiber")
	assert.Equal(t, fiber.StatusTeapot, code)

	code, body = call(t, app, "/other")
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", body.ErrorCode)
	assert.NotContains(t, body.Message, "boom")
}

func TestErrorHandlerUnmatchedRoute(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})
	code, body := call(t, app, "/nowhere")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", body.ErrorCode)
}

type sample struct {
	Code  string `json:"code" validate:"required,max=3"`
	Price *int   `json:"price" validate:"required,gte=0"`
}

func (s *sample) Normalize() { s.Code = strings.TrimSpace(s.Code) }

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var req sample
		if ok, err := BindAndValidate(c, &req); !ok {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	post := func(body string) (int, ErrorResponse) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		var out ErrorResponse
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &out)
		}
		return resp.StatusCode, out
	}

	code, body := post(`{"code":`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "invalid request body", body.Message)

	code, body = post(`{"code":"A","price":-1}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, body.Errors, "price")
	assert.NotContains(t, body.Errors, "code")

	// trimmed before validation
	code, _ = post(`{"code":"  AB  ","price":1}`)
	assert.Equal(t, fiber.StatusNoContent, code)

	code, body = post(`{}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, []string{"is required"}, body.Errors["price"])
}

