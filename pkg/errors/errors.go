package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Status      int    `json:"status"`
	Err         error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message, description string) *Error {
	return &Error{Code: code, Status: status, Message: message, Description: description}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Validation errors reported by the request gate. All of them are terminal for
// the request that raised them.
var (
	ErrMissingKey  = New("MISSING_KEY", http.StatusUnprocessableEntity, "unprocessable", "a required field is missing from the request body")
	ErrBadKey      = New("BAD_KEY", http.StatusUnprocessableEntity, "unprocessable", "the request body contains an unrecognized field")
	ErrBadInt      = New("BAD_INT", http.StatusUnprocessableEntity, "unprocessable", "expected an integer value")
	ErrBadTime     = New("BAD_TIME", http.StatusUnprocessableEntity, "unprocessable", "times must use the 24-hour HH:MM form")
	ErrDayList     = New("DAY_LIST", http.StatusUnprocessableEntity, "unprocessable", "days must be a non-empty list")
	ErrBadDay      = New("BAD_DAY", http.StatusUnprocessableEntity, "unprocessable", "a listed day is not an allowed weekday")
	ErrDupDay      = New("DUP_DAY", http.StatusUnprocessableEntity, "unprocessable", "a day may be listed only once")
	ErrInvalidTime = New("INVALID_TIME", http.StatusUnprocessableEntity, "unprocessable", "the course time window violates the schedule bounds")
	ErrBadPhone    = New("BAD_PHONE", http.StatusUnprocessableEntity, "unprocessable", "phone numbers must be ten digits or NNN-NNN-NNNN")
	ErrBadEmail    = New("BAD_EMAIL", http.StatusUnprocessableEntity, "unprocessable", "the email address is not valid")
	ErrUniqueEmail = New("UNIQUE_EMAIL", http.StatusUnprocessableEntity, "unprocessable", "the email address is already registered")
	ErrDuplicate   = New("DUPLICATE", http.StatusUnprocessableEntity, "unprocessable", "the person is already linked to this course")
	ErrConflict    = New("CONFLICT", http.StatusUnprocessableEntity, "unprocessable", "the course overlaps another course on the person's schedule")
	ErrBadDetail   = New("BAD_DETAIL", http.StatusUnprocessableEntity, "unprocessable", "detail must be 'full' or 'short'")
	ErrBadPage     = New("BAD_PAGE", http.StatusUnprocessableEntity, "unprocessable", "page must be an integer greater than zero")
	ErrBadFormat   = New("BAD_FORMAT", http.StatusUnprocessableEntity, "unprocessable", "format must be 'csv' or 'pdf'")
)

// Lookup and boundary errors.
var (
	ErrNoRecord     = New("NO_RECORD", http.StatusNotFound, "resource not found", "no record exists with the requested id")
	ErrNoRecords    = New("NO_RECORDS", http.StatusNotFound, "resource not found", "the requested page contains no records")
	ErrUnauthorized = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized", "")
	ErrForbidden    = New("FORBIDDEN", http.StatusForbidden, "forbidden", "the token does not carry the required scope")
	ErrCacheMiss    = New("CACHE_MISS", http.StatusNotFound, "cache miss", "")
	ErrInternal     = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error", "")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for description overrides.
func Clone(err *Error, description string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if description != "" {
		clone.Description = description
	}
	return &clone
}
