// file: internals/helpers/json_response.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	MessageAr string              `json:"messageAr,omitempty"`
	ErrorCode string              `json:"errorCode,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: generic error (not validation)
func JsonError(c *fiber.Ctx, status int, message string, messageAr ...string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" && status >= 500 {
		message = fiber.ErrInternalServerError.Message
	}

	resp := ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: statusToErrorCode(status),
	}
	if len(messageAr) > 0 {
		resp.MessageAr = messageAr[0]
	}
	return c.Status(status).JSON(resp)
}

// JsonValidationError: field validation errors (422)
func JsonValidationError(c *fiber.Ctx, fieldErrors map[string][]string) error {
	if fieldErrors == nil {
		fieldErrors = map[string][]string{}
	}
	resp := ErrorResponse{
		Success:   false,
		Message:   "validation failed",
		MessageAr: "فشل التحقق من البيانات",
		ErrorCode: "VALIDATION_ERROR",
		Errors:    fieldErrors,
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
}

// FromError maps a service error to the standard JSON error response.
func FromError(c *fiber.Ctx, log *zap.Logger, err error) error {
	if ae, ok := AsAppError(err); ok {
		return JsonError(c, ae.Status, ae.Message, ae.MessageAr)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return JsonError(c, fiber.StatusNotFound, "record not found", "السجل غير موجود")
	}
	if IsUniqueViolation(err) || IsExclusionViolation(err) {
		return JsonError(c, fiber.StatusConflict, "record conflicts with existing data", "السجل يتعارض مع بيانات موجودة")
	}

	if log != nil {
		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return JsonError(c, fiber.StatusInternalServerError, "internal server error", "خطأ داخلي في الخادم")
}

/* ===============================
   JSON responses (echo the row)
=================================*/

// JsonOK: GET detail / update
func JsonOK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(data)
}

// JsonCreated: POST
func JsonCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// JsonDeleted: DELETE → {message, messageAr}
func JsonDeleted(c *fiber.Ctx, message, messageAr string) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   message,
		"messageAr": messageAr,
	})
}
