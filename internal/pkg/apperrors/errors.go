package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("resource not found")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrDatabase = errors.New("database error")

	ErrInternalServer = errors.New("internal server error")

	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	ErrEMICleared = errors.New("emi is already cleared")

	ErrPaymentExceedsDue = errors.New("payment amount exceeds emi due")

	ErrConflict = errors.New("resource conflict")

	// ErrTransport marks network-level failures and undecodable response bodies.
	ErrTransport = errors.New("transport failure")

	// ErrBusiness marks a well-formed envelope reporting success=false, or
	// success=true without a payload.
	ErrBusiness = errors.New("business failure")

	ErrSubmissionInProgress = errors.New("payment submission already in progress")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}

func WrapTransportError(cause error, message string) error {
	return &AppError{
		Code:    "TRANSPORT_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrTransport, cause),
	}
}

// NewBusinessError carries the user-facing message taken from a failed envelope.
func NewBusinessError(message string) error {
	return &AppError{
		Code:    "BUSINESS_ERROR",
		Message: message,
		Cause:   ErrBusiness,
	}
}

// UserMessage returns the message of the outermost AppError or ValidationError
// in the chain, or fallback when there is none.
func UserMessage(err error, fallback string) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
