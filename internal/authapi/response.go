package authapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nhle/admin-panel/internal/store"
)

// ErrorEnvelope is the body of every error response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// APIError is the machine-readable code and human message of a failure.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// HTTPErrorHandler renders handler errors as an ErrorEnvelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, apiErr := mapError(err)
	if jsonErr := c.JSON(status, ErrorEnvelope{Error: apiErr}); jsonErr != nil {
		log.Printf("authapi: sending error response: %v", jsonErr)
	}
}

func mapError(err error) (int, APIError) {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, APIError{
			Code:    http.StatusText(echoErr.Code),
			Message: msg,
		}
	}

	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, APIError{
			Code:    "validation_error",
			Message: validationErr.Message,
			Field:   validationErr.Field,
		}
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, APIError{
			Code:    "unauthorized",
			Message: "Invalid email or password",
		}
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, APIError{
			Code:    "invalid_input",
			Message: "The request body is invalid",
		}
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, APIError{
			Code:    "conflict",
			Message: "An account with this email already exists",
		}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: "The requested resource was not found",
		}
	default:
		log.Printf("authapi: unhandled error: %v", err)
		return http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "An unexpected error occurred",
		}
	}
}
