package models

// ErrorResponse is the envelope every failed request serializes to.
type ErrorResponse struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Timestamp int64  `json:"timestamp"`
}

// ValidationErrorResponse adds per-field detail for 400 VALIDATION_FAILED.
type ValidationErrorResponse struct {
	Message   string       `json:"message"`
	Code      string       `json:"code"`
	Timestamp int64        `json:"timestamp"`
	Errors    []FieldError `json:"errors"`
}

type FieldError struct {
	Field         string      `json:"field"`
	RejectedValue interface{} `json:"rejectedValue,omitempty"`
	Message       string      `json:"message"`
}
