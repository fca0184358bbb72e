package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is the typed business error every service returns. The fiber error
// handler maps it to the HTTP envelope; anything else becomes an opaque 500.
type AppError struct {
	Code    string
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(status int, code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Status: status}
}

func Invalid(code, format string, args ...interface{}) *AppError {
	return New(fiber.StatusBadRequest, code, format, args...)
}

func Unauthorized(code, format string, args ...interface{}) *AppError {
	return New(fiber.StatusUnauthorized, code, format, args...)
}

func Forbidden(format string, args ...interface{}) *AppError {
	return New(fiber.StatusForbidden, "FORBIDDEN", format, args...)
}

func NotFound(code, format string, args ...interface{}) *AppError {
	return New(fiber.StatusNotFound, code, format, args...)
}

func Conflict(code, format string, args ...interface{}) *AppError {
	return New(fiber.StatusConflict, code, format, args...)
}

func Internal(format string, args ...interface{}) *AppError {
	return New(fiber.StatusInternalServerError, "INTERNAL_SERVER_ERROR", format, args...)
}

// InvalidCredentials is the single 401 used for every failed login variant so
// responses never reveal which part of the credentials was wrong.
func InvalidCredentials() *AppError {
	return Unauthorized("INVALID_CREDENTIALS", "invalid credentials")
}

func InvalidToken(format string, args ...interface{}) *AppError {
	return Unauthorized("INVALID_TOKEN", format, args...)
}

// As unwraps err into an *AppError if it is one.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
