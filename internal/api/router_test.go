package api

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shanavasvb/payment-app-frontend/internal/config"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type stubLedger struct {
	mock.Mock
}

func (s *stubLedger) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	args := s.Called(ctx)
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (s *stubLedger) ListPayments(ctx context.Context) ([]payment.Payment, error) {
	args := s.Called(ctx)
	return args.Get(0).([]payment.Payment), args.Error(1)
}

func (s *stubLedger) RecordPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (*payment.Receipt, error) {
	args := s.Called(ctx, accountNumber, amount)
	return args.Get(0).(*payment.Receipt), args.Error(1)
}

func newTestRouter(service *stubLedger) http.Handler {
	cfg := &config.Config{Metrics: config.MetricsConfig{Path: "/metrics"}}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	return SetupRouter(service, nil, cfg, logger)
}

func TestRouterServesCollectionEndpoints(t *testing.T) {
	service := new(stubLedger)
	service.On("ListCustomers", mock.Anything).Return([]customer.Customer{}, nil)
	service.On("ListPayments", mock.Anything).Return([]payment.Payment{}, nil)
	service.On("RecordPayment", mock.Anything, "ACC123", mock.Anything).Return(&payment.Receipt{
		PaymentID: 1, AccountNumber: "ACC123", PaymentAmount: decimal.NewFromInt(200), RemainingDue: decimal.NewFromInt(300),
	}, nil)
	router := newTestRouter(service)

	tests := []struct {
		method, path, body string
		wantStatus         int
	}{
		{http.MethodGet, "/customers", "", http.StatusOK},
		{http.MethodGet, "/payments", "", http.StatusOK},
		{http.MethodPost, "/payments", `{"account_number":"ACC123","payment_amount":200}`, http.StatusCreated},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodDelete, "/payments", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/loans", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
