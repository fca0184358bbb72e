package apperrors

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"welfare-center-api/src/models"
)

// ValidationError carries per-field violations out of the request-validation
// layer; the handler serializes them into the extended envelope.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string { return "validation failed" }

// ErrorHandler is the single boundary that turns service errors into HTTP
// responses. It is installed in fiber.Config at startup.
func ErrorHandler(c *fiber.Ctx, err error) error {
	now := time.Now().UnixMilli()

	var valErr *ValidationError
	if e, ok := err.(*ValidationError); ok {
		valErr = e
	}
	if valErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Message:   "Validation failed",
			Code:      "VALIDATION_FAILED",
			Timestamp: now,
			Errors:    valErr.Fields,
		})
	}

	if appErr, ok := As(err); ok {
		if appErr.Status >= fiber.StatusInternalServerError {
			logrus.WithError(err).Error("internal error")
		} else {
			logrus.WithFields(logrus.Fields{
				"code":   appErr.Code,
				"status": appErr.Status,
			}).Warn(appErr.Message)
		}
		return c.Status(appErr.Status).JSON(models.ErrorResponse{
			Message:   appErr.Message,
			Code:      appErr.Code,
			Timestamp: now,
		})
	}

	if fibErr, ok := err.(*fiber.Error); ok {
		return c.Status(fibErr.Code).JSON(models.ErrorResponse{
			Message:   fibErr.Message,
			Code:      "HTTP_ERROR",
			Timestamp: now,
		})
	}

	// Unexpected: full detail stays server-side, the client gets an opaque 500.
	logrus.WithError(err).WithField("path", c.Path()).Error("unexpected error")
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Message:   "Internal server error",
		Code:      "INTERNAL_SERVER_ERROR",
		Timestamp: now,
	})
}
