package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/models"
)

var validate = validator.New()

// ValidateStruct runs the validate tags on a request body and converts any
// violations into the field-level error envelope.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Invalid("VALIDATION_FAILED", "invalid request body")
	}

	fields := make([]models.FieldError, 0, len(invalid))
	for _, fe := range invalid {
		fields = append(fields, models.FieldError{
			Field:         fe.Field(),
			RejectedValue: fe.Value(),
			Message:       validationMessage(fe),
		})
	}
	return &apperrors.ValidationError{Fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
