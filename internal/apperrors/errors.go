package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Caller errors of the financial core. They wrap ErrValidation so handlers can map them to 400.
var (
	ErrInvalidAmount       = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidRate         = fmt.Errorf("%w: invalid rate", ErrValidation)
	ErrInvalidTaxCategory  = fmt.Errorf("%w: invalid tax category", ErrValidation)
	ErrInvalidMargin       = fmt.Errorf("%w: profit margin must be below 100 percent", ErrValidation)
	ErrUnknownCurrency     = fmt.Errorf("%w: unknown currency", ErrValidation)
	ErrUnknownPaymentTerms = fmt.Errorf("%w: unknown payment terms", ErrValidation)
	ErrInvalidCustomTerms  = fmt.Errorf("%w: custom payment terms not understood", ErrValidation)
)

// ErrProductWriteFailed marks a per-product failure inside a recalculation batch.
var ErrProductWriteFailed = errors.New("product write failed")

// ErrLedgerNotFound is returned by rate stores when a currency has no active rate.
// The ledger service never lets it escape.
var ErrLedgerNotFound = fmt.Errorf("%w: no active exchange rate", ErrNotFound)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError builds a 400 AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}
