package apperrors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"welfare-center-api/src/models"
)

func serve(t *testing.T, err error) (int, models.ErrorResponse) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return err })

	resp, testErr := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, testErr)

	body, _ := io.ReadAll(resp.Body)
	var envelope models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func TestHandlerMapsAppError(t *testing.T) {
	status, envelope := serve(t, NotFound("USER_NOT_FOUND", "user not found"))
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "USER_NOT_FOUND", envelope.Code)
	assert.Equal(t, "user not found", envelope.Message)
	assert.NotZero(t, envelope.Timestamp)
}

func TestHandlerMapsConflict(t *testing.T) {
	status, envelope := serve(t, Conflict("DUPLICATE_RESOURCE", "name taken"))
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "DUPLICATE_RESOURCE", envelope.Code)
}

func TestHandlerHidesUnexpectedErrors(t *testing.T) {
	status, envelope := serve(t, errors.New("pq: connection reset by peer"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", envelope.Code)
	assert.NotContains(t, envelope.Message, "pq:")
}

func TestHandlerValidationEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return &ValidationError{Fields: []models.FieldError{
			{Field: "email", RejectedValue: "nope", Message: "must be a valid email address"},
		}}
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var envelope models.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Equal(t, "VALIDATION_FAILED", envelope.Code)
	require.Len(t, envelope.Errors, 1)
	assert.Equal(t, "email", envelope.Errors[0].Field)
}

func TestAsUnwraps(t *testing.T) {
	appErr, ok := As(Forbidden("no"))
	require.True(t, ok)
	assert.Equal(t, fiber.StatusForbidden, appErr.Status)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
