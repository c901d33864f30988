package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"success":false,"message":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError writes a {success:false,message} envelope with the status
// matching err.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status, message := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Unhandled internal error", "error", err)
	}
	respondJSON(w, status, envelope.Fail[struct{}](message))
}

func errorStatus(err error) (int, string) {
	var validationError *apperrors.ValidationError

	switch {
	case errors.As(err, &validationError):
		return http.StatusBadRequest, validationError.Message
	case errors.Is(err, apperrors.ErrInvalidArgument):
		return http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, apperrors.ErrInvalidPaymentAmount):
		return http.StatusBadRequest, "Payment amount must be greater than zero"
	case errors.Is(err, apperrors.ErrPaymentExceedsDue):
		return http.StatusBadRequest, "Payment amount exceeds EMI due"
	case errors.Is(err, apperrors.ErrEMICleared):
		return http.StatusBadRequest, "EMI is already cleared for this account"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Customer not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
