// Package envelope defines the {success, message, data} wrapper shared by every
// collections backend response.
package envelope

import "github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"

type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *T     `json:"data,omitempty"`
}

func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: &data}
}

func Fail[T any](message string) Envelope[T] {
	return Envelope[T]{Success: false, Message: message}
}

// Payload reports the data only when the envelope is successful and carries it.
func (e Envelope[T]) Payload() (T, bool) {
	var zero T
	if !e.Success || e.Data == nil {
		return zero, false
	}
	return *e.Data, true
}

func (e Envelope[T]) FailureMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// Result converts the envelope to a value or an apperrors.ErrBusiness error.
func (e Envelope[T]) Result(fallback string) (T, error) {
	data, ok := e.Payload()
	if !ok {
		return data, apperrors.NewBusinessError(e.FailureMessage(fallback))
	}
	return data, nil
}
