package apperrors

import (
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation marks a malformed or incomplete submission payload.
func Validation(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

// Gateway marks a payment-gateway failure. The caller must not proceed
// to payment when order creation fails.
func Gateway(message string, err error) *Error {
	return New(http.StatusBadGateway, message, err)
}

// Persistence marks a ledger read, deserialize or write failure.
func Persistence(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

// Common error types
var (
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, "Storage not configured", nil)
	ErrLedgerNotFound     = New(http.StatusNotFound, "No registrations found", nil)
)
