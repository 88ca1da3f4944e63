package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorEnvelope is the JSON body returned for every failed request:
// {"errors":{"body":["...]}}
type ErrorEnvelope struct {
	Errors ErrorBody `json:"errors"`
}

// ErrorBody holds the human-readable message list.
type ErrorBody struct {
	Body []string `json:"body"`
}

// AppError is a domain error carrying a taxonomy code. The code decides
// the HTTP status at the boundary.
type AppError struct {
	Code    string
	Message string
	Err     error
}

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the taxonomy code to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return fiber.StatusUnprocessableEntity
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s %v not found", resource, id)}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewInternalError wraps a store or infrastructure failure. The wrapped
// cause is logged but never serialized to the caller.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal server error", Err: err}
}

// RespondWithError writes the errors.body envelope with the status
// derived from the error's taxonomy code. Non-AppError values are
// treated as internal failures so store detail never leaks.
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = NewInternalError(err)
	}

	return c.Status(appErr.HTTPStatus()).JSON(ErrorEnvelope{
		Errors: ErrorBody{Body: []string{appErr.Message}},
	})
}
