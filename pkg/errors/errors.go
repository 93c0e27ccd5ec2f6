package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
	CodeTimeout           = "TIMEOUT"
	CodeListingInactive   = "LISTING_INACTIVE"
	CodeInvalidDateRange  = "INVALID_DATE_RANGE"
	CodeCapacityExceeded  = "CAPACITY_EXCEEDED"
	CodeIllegalTransition = "ILLEGAL_TRANSITION"
	CodeInvalidPrice      = "INVALID_PRICE"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func ListingInactive(id string) *AppError {
	return &AppError{
		Code:       CodeListingInactive,
		Message:    "Listing is not active",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"listing_id": id,
		},
	}
}

func InvalidDateRange(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidDateRange,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func CapacityExceeded(requested, max int) *AppError {
	return &AppError{
		Code:       CodeCapacityExceeded,
		Message:    fmt.Sprintf("Number of guests (%d) exceeds maximum guests allowed (%d)", requested, max),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"requested_guests": requested,
			"max_guests":       max,
		},
	}
}

func IllegalTransition(from, to string) *AppError {
	return &AppError{
		Code:       CodeIllegalTransition,
		Message:    fmt.Sprintf("Booking status cannot change from %s to %s", from, to),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"from": from,
			"to":   to,
		},
	}
}

func InvalidPrice(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidPrice,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
