// Package client talks to the collections backend over its three REST calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shanavasvb/payment-app-frontend/internal/config"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	customersPath = "/customers"
	paymentsPath  = "/payments"

	opFetchCustomers = "fetch_customers"
	opSubmitPayment  = "submit_payment"
	opGetAllPayments = "get_all_payments"

	headerRequestID = "X-Request-ID"
)

// PaymentRequest is the body of POST /payments.
type PaymentRequest struct {
	AccountNumber string      `json:"account_number"`
	PaymentAmount json.Number `json:"payment_amount"`
}

// Client calls the collections backend. Every call decodes the response body
// as an envelope whatever the HTTP status; only network failures, cancellation
// and undecodable bodies surface as errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var (
	_ customer.Gateway = (*Client)(nil)
	_ payment.Source   = (*Client)(nil)
)

func New(cfg config.BackendConfig, logger *slog.Logger) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, logger)
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "collectionsClient")),
	}
}

func (c *Client) FetchCustomers(ctx context.Context) (envelope.Envelope[[]customer.Customer], error) {
	return do[[]customer.Customer](ctx, c, opFetchCustomers, http.MethodGet, customersPath, nil)
}

// SubmitPayment posts the payment as given. Validation is the caller's job.
func (c *Client) SubmitPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (envelope.Envelope[payment.Receipt], error) {
	body := PaymentRequest{AccountNumber: accountNumber, PaymentAmount: money.Number(amount)}
	return do[payment.Receipt](ctx, c, opSubmitPayment, http.MethodPost, paymentsPath, body)
}

func (c *Client) GetAllPayments(ctx context.Context) (envelope.Envelope[[]payment.Payment], error) {
	return do[[]payment.Payment](ctx, c, opGetAllPayments, http.MethodGet, paymentsPath, nil)
}

func do[T any](ctx context.Context, c *Client, op, method, path string, body any) (resp envelope.Envelope[T], err error) {
	start := time.Now()
	defer func() {
		observe(op, outcomeOf(ctx, resp, err), time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return resp, fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return resp, apperrors.WrapTransportError(err, "failed to build request")
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With(slog.String("operation", op), slog.String("request_id", requestID))
	log.DebugContext(ctx, "Calling collections backend", slog.String("method", method), slog.String("path", path))

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.DebugContext(ctx, "Request cancelled", slog.Any("error", ctxErr))
			return resp, ctxErr
		}
		log.WarnContext(ctx, "Request failed", slog.Any("error", err))
		return resp, apperrors.WrapTransportError(err, "request failed")
	}
	defer httpResp.Body.Close()

	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return resp, ctxErr
		}
		log.WarnContext(ctx, "Undecodable response body", slog.Int("status", httpResp.StatusCode), slog.Any("error", err))
		return resp, apperrors.WrapTransportError(err, fmt.Sprintf("undecodable response (status %d)", httpResp.StatusCode))
	}

	log.DebugContext(ctx, "Collections backend responded",
		slog.Int("status", httpResp.StatusCode), slog.Bool("success", resp.Success))
	return resp, nil
}
