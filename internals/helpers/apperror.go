// file: internals/helpers/apperror.go
package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// AppError is a business-rule failure carrying an HTTP status and both UI languages.
type AppError struct {
	Status    int
	Message   string
	MessageAr string
}

func (e *AppError) Error() string { return e.Message }

func NotFound(msg, msgAr string) error {
	return &AppError{Status: fiber.StatusNotFound, Message: msg, MessageAr: msgAr}
}

func Conflict(msg, msgAr string) error {
	return &AppError{Status: fiber.StatusConflict, Message: msg, MessageAr: msgAr}
}

func BadRequest(msg, msgAr string) error {
	return &AppError{Status: fiber.StatusBadRequest, Message: msg, MessageAr: msgAr}
}

// AsAppError unwraps err into an *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func IsNotFound(err error) bool   { return hasStatus(err, fiber.StatusNotFound) }
func IsConflict(err error) bool   { return hasStatus(err, fiber.StatusConflict) }
func IsBadRequest(err error) bool { return hasStatus(err, fiber.StatusBadRequest) }

func hasStatus(err error, status int) bool {
	ae, ok := AsAppError(err)
	return ok && ae.Status == status
}

/* =========================
   Driver errors
========================= */

const (
	sqlStateUniqueViolation    = "23505"
	sqlStateExclusionViolation = "23P01"
)

// IsUniqueViolation recognises duplicate-key errors from pgx, with a message
// fallback for other drivers (sqlite: "UNIQUE constraint failed").
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, sqlStateUniqueViolation) ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}

// IsExclusionViolation recognises EXCLUDE constraint failures (overlapping ranges).
func IsExclusionViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateExclusionViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "exclusion constraint")
}
