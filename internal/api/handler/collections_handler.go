package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shanavasvb/payment-app-frontend/internal/api/handler/dto"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/ledger"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
)

type CollectionsHandler struct {
	service ledger.Service
	logger  *slog.Logger
}

func NewCollectionsHandler(s ledger.Service, l *slog.Logger) *CollectionsHandler {
	return &CollectionsHandler{
		service: s,
		logger:  l.With("component", "CollectionsHandler"),
	}
}

// ListCustomers returns every customer with its current EMI due.
func (h *CollectionsHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope.OK(dto.NewCustomerResponses(customers)))
}

// RecordPayment applies a single payment and answers with the remaining due.
func (h *CollectionsHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Malformed payment request", "error", err)
		respondError(w, h.logger, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	amount, err := req.Amount()
	if err != nil {
		respondError(w, h.logger, apperrors.NewValidationError("payment_amount", "Payment amount must be a number"))
		return
	}

	receipt, err := h.service.RecordPayment(r.Context(), req.AccountNumber, amount)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	resp := envelope.OK(dto.NewReceiptResponse(receipt))
	resp.Message = "Payment processed successfully"
	respondJSON(w, http.StatusCreated, resp)
}

func (h *CollectionsHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope.OK(dto.NewPaymentResponses(payments)))
}
