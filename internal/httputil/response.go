package httputil

import (
	"errors"
	"fmt"

	"sonority/internal/logger"
	"sonority/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Error codes used when no domain code applies.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_FAILED"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeTooMany      = "TOO_MANY_REQUESTS"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error code and message.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteError writes {"error": {"code": ..., "message": ...}} with the given status.
func WriteError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// StatusOf maps a domain error kind to an HTTP status code.
func StatusOf(kind services.Kind) int {
	switch kind {
	case services.KindConflict, services.KindInvalidTransition:
		return fiber.StatusConflict
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindForbidden:
		return fiber.StatusForbidden
	case services.KindBadInput:
		return fiber.StatusBadRequest
	case services.KindUnauthenticated:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// CodeForStatus returns the generic code used for a bare HTTP status.
func CodeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
		return ErrCodeBadRequest
	case fiber.StatusUnauthorized:
		return ErrCodeUnauthorized
	case fiber.StatusNotFound:
		return ErrCodeNotFound
	case fiber.StatusMethodNotAllowed:
		return ErrCodeNotAllowed
	case fiber.StatusTooManyRequests:
		return ErrCodeTooMany
	default:
		return ErrCodeInternal
	}
}

// WriteServiceError renders an error returned by a service. Domain errors keep
// their code and message; anything else is logged and hidden behind a 500.
func WriteServiceError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var domainErr *services.Error
	if errors.As(err, &domainErr) {
		return WriteError(c, StatusOf(domainErr.Kind), domainErr.Code, domainErr.Message)
	}
	log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return WriteError(c, fiber.StatusInternalServerError, ErrCodeInternal, "Internal server error")
}

// WriteValidationError renders validator failures as a field → message map.
func WriteValidationError(c *fiber.Ctx, err error) error {
	fields := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ErrorDetail{
		Code:    ErrCodeValidation,
		Message: "Validation failed",
		Fields:  fields,
	}})
}
