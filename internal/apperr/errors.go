package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation               = "VALIDATION_ERROR"
	CodeSlotUnavailable          = "SLOT_UNAVAILABLE"
	CodeInvalidTransition        = "INVALID_TRANSITION"
	CodeCancellationWindowClosed = "CANCELLATION_WINDOW_CLOSED"
	CodeNotAuthorized            = "NOT_AUTHORIZED"
	CodeNotFound                 = "NOT_FOUND"
	CodeInternal                 = "INTERNAL_ERROR"
)

// Error is the application error type surfaced by services. Every business
// rule rejection is one of the codes above; callers must not retry them.
type Error struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) StatusCode() int {
	return e.HTTPStatus
}

func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func Validation(message string) *Error {
	return &Error{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// SlotUnavailable reports an availability conflict. The conflicting booking id
// is carried in Details for diagnostics.
func SlotUnavailable(conflictingBookingID int64) *Error {
	return &Error{
		Code:       CodeSlotUnavailable,
		Message:    "requested interval conflicts with an existing booking",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"conflicting_booking_id": conflictingBookingID,
		},
	}
}

func InvalidTransition(current, requested string) *Error {
	return &Error{
		Code:       CodeInvalidTransition,
		Message:    fmt.Sprintf("cannot transition booking from %s to %s", current, requested),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"current_status":   current,
			"requested_status": requested,
		},
	}
}

func CancellationWindowClosed(deadline string) *Error {
	return &Error{
		Code:       CodeCancellationWindowClosed,
		Message:    "cancellation is only permitted more than 24 hours before the booking starts",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"cancellation_deadline": deadline,
		},
	}
}

func NotAuthorized(message string) *Error {
	return &Error{
		Code:       CodeNotAuthorized,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func NotFound(resource string, id int64) *Error {
	return &Error{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Internal(message string, err error) *Error {
	return &Error{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Is reports whether err is an application error with the given code.
func Is(err error, code string) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// As converts any error to an application error, wrapping unknown errors as
// internal so transport layers never leak raw error strings.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("an unexpected error occurred", err)
}
