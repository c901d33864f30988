package payment

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/shanavasvb/payment-app-frontend/internal/notify"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/sequence"
)

const (
	alertTitle            = "Error"
	msgFetchHistoryFailed = "Failed to fetch payment history"
	msgConnectFailed      = "Failed to connect to server"
)

type Source interface {
	GetAllPayments(ctx context.Context) (envelope.Envelope[[]Payment], error)
}

// HistoryState is an immutable snapshot of the payment-history screen.
type HistoryState struct {
	Payments   []Payment
	Loading    bool
	Refreshing bool
	Version    uint64
}

func (s HistoryState) Stats() Stats {
	return ComputeStats(s.Payments)
}

// History is the view model behind the payment-history screen. The payment
// list is only ever replaced wholesale.
type History struct {
	source   Source
	notifier notify.Notifier
	logger   *slog.Logger

	mu      sync.Mutex
	state   HistoryState
	tracker sequence.Tracker
}

func NewHistory(source Source, notifier notify.Notifier, logger *slog.Logger) *History {
	if source == nil {
		panic("payment source cannot be nil")
	}
	if notifier == nil {
		panic("notifier cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewHistory, using default stderr handler")
	}
	return &History{
		source:   source,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "paymentHistory")),
	}
}

func (h *History) Snapshot() HistoryState {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.state
	s.Payments = append([]Payment(nil), h.state.Payments...)
	return s
}

// Load fetches the history within the caller's lifetime. Cancelling ctx
// silently abandons the result.
func (h *History) Load(ctx context.Context) error {
	return h.load(ctx, false)
}

// Refresh fetches the history detached from any caller cancellation.
func (h *History) Refresh(ctx context.Context) error {
	return h.load(context.WithoutCancel(ctx), true)
}

func (h *History) load(ctx context.Context, refresh bool) error {
	seq := h.begin(refresh)
	defer h.end(refresh)

	h.logger.DebugContext(ctx, "Fetching payment history", slog.Uint64("seq", seq), slog.Bool("refresh", refresh))
	resp, err := h.source.GetAllPayments(ctx)
	if ctx.Err() != nil {
		h.logger.DebugContext(ctx, "Payment history fetch cancelled", slog.Uint64("seq", seq))
		return nil
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Payment history fetch failed", slog.Any("error", err))
		h.notifier.Alert(ctx, alertTitle, msgConnectFailed)
		return err
	}

	payments, err := resp.Result(msgFetchHistoryFailed)
	if err != nil {
		h.logger.WarnContext(ctx, "Backend rejected payment history fetch", slog.Any("error", err))
		h.notifier.Alert(ctx, alertTitle, apperrors.UserMessage(err, msgFetchHistoryFailed))
		return err
	}

	h.apply(ctx, seq, payments)
	return nil
}

func (h *History) begin(refresh bool) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	seq := h.tracker.Begin(refresh)
	h.state.Loading = h.tracker.Loading()
	h.state.Refreshing = h.tracker.Refreshing()
	return seq
}

func (h *History) end(refresh bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tracker.End(refresh)
	h.state.Loading = h.tracker.Loading()
	h.state.Refreshing = h.tracker.Refreshing()
}

func (h *History) apply(ctx context.Context, seq uint64, payments []Payment) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.tracker.Accept(seq) {
		h.logger.WarnContext(ctx, "Discarding stale payment history response", slog.Uint64("seq", seq))
		return
	}
	h.state.Payments = append([]Payment(nil), payments...)
	h.state.Version++
	h.logger.InfoContext(ctx, "Payment history loaded", slog.Int("count", len(payments)), slog.Uint64("version", h.state.Version))
}
