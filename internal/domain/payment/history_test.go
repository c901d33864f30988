package payment_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/notify"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/apperrors"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupHistory() (*payment.MockSource, *notify.Inbox, *payment.History) {
	source := new(payment.MockSource)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	inbox := notify.NewInbox(10, logger)
	return source, inbox, payment.NewHistory(source, inbox, logger)
}

func samplePayments() []payment.Payment {
	return []payment.Payment{
		{ID: 2, PaymentDate: "2024-03-02T10:30:00Z", PaymentAmount: decimal.RequireFromString("100.5"), Status: payment.StatusCompleted, CustomerName: "Asha Rao", AccountNumber: "ACC123"},
		{ID: 1, PaymentDate: "2024-03-01T09:00:00Z", PaymentAmount: decimal.RequireFromString("49.5"), Status: payment.StatusCompleted, CustomerName: "Vikram Shah", AccountNumber: "ACC456"},
	}
}

func TestComputeStats(t *testing.T) {
	t.Run("Empty list", func(t *testing.T) {
		stats := payment.ComputeStats(nil)
		assert.Equal(t, 0, stats.Count)
		assert.Equal(t, "0.00", stats.TotalFixed())
	})

	t.Run("Sums payment amounts", func(t *testing.T) {
		stats := payment.ComputeStats(samplePayments())
		assert.Equal(t, 2, stats.Count)
		assert.Equal(t, "150.00", stats.TotalFixed())
	})
}

func TestHistory_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Success replaces the list and recomputes stats", func(t *testing.T) {
		source, inbox, history := setupHistory()
		source.On("GetAllPayments", ctx).Return(envelope.OK(samplePayments()), nil).Once()

		err := history.Load(ctx)

		require.NoError(t, err)
		state := history.Snapshot()
		assert.Len(t, state.Payments, 2)
		assert.False(t, state.Loading)
		assert.Equal(t, uint64(1), state.Version)
		assert.Equal(t, "150.00", state.Stats().TotalFixed())
		assert.Zero(t, inbox.Pending())
		source.AssertExpectations(t)
	})

	t.Run("Backend failure alerts with the envelope message and keeps prior list", func(t *testing.T) {
		source, inbox, history := setupHistory()
		source.On("GetAllPayments", ctx).Return(envelope.OK(samplePayments()), nil).Once()
		require.NoError(t, history.Load(ctx))

		source.On("GetAllPayments", ctx).Return(envelope.Fail[[]payment.Payment]("Database unavailable"), nil).Once()
		err := history.Load(ctx)

		assert.ErrorIs(t, err, apperrors.ErrBusiness)
		assert.Len(t, history.Snapshot().Payments, 2)
		alerts := inbox.Drain()
		if assert.Len(t, alerts, 1) {
			assert.Equal(t, "Database unavailable", alerts[0].Message)
		}
	})

	t.Run("Success without data falls back to generic message", func(t *testing.T) {
		source, inbox, history := setupHistory()
		source.On("GetAllPayments", ctx).Return(envelope.Envelope[[]payment.Payment]{Success: true}, nil).Once()

		err := history.Load(ctx)

		assert.ErrorIs(t, err, apperrors.ErrBusiness)
		alerts := inbox.Drain()
		if assert.Len(t, alerts, 1) {
			assert.Equal(t, "Failed to fetch payment history", alerts[0].Message)
		}
	})

	t.Run("Transport failure alerts connectivity message", func(t *testing.T) {
		source, inbox, history := setupHistory()
		transportErr := apperrors.WrapTransportError(errors.New("connection refused"), "request failed")
		source.On("GetAllPayments", ctx).Return(envelope.Envelope[[]payment.Payment]{}, transportErr).Once()

		err := history.Load(ctx)

		assert.ErrorIs(t, err, apperrors.ErrTransport)
		assert.Empty(t, history.Snapshot().Payments)
		alerts := inbox.Drain()
		if assert.Len(t, alerts, 1) {
			assert.Equal(t, "Failed to connect to server", alerts[0].Message)
		}
	})

	t.Run("Cancelled fetch is silent and leaves the list untouched", func(t *testing.T) {
		source, inbox, history := setupHistory()
		cancelCtx, cancel := context.WithCancel(ctx)
		source.On("GetAllPayments", mock.Anything).Run(func(mock.Arguments) { cancel() }).
			Return(envelope.Envelope[[]payment.Payment]{}, context.Canceled).Once()

		err := history.Load(cancelCtx)

		assert.NoError(t, err)
		state := history.Snapshot()
		assert.Empty(t, state.Payments)
		assert.Zero(t, state.Version)
		assert.False(t, state.Loading)
		assert.Zero(t, inbox.Pending())
	})

	t.Run("Response arriving after cancellation is discarded", func(t *testing.T) {
		source, inbox, history := setupHistory()
		cancelCtx, cancel := context.WithCancel(ctx)
		source.On("GetAllPayments", mock.Anything).Run(func(mock.Arguments) { cancel() }).
			Return(envelope.OK(samplePayments()), nil).Once()

		require.NoError(t, history.Load(cancelCtx))

		assert.Empty(t, history.Snapshot().Payments)
		assert.Zero(t, inbox.Pending())
	})
}

func TestHistory_RefreshIgnoresCallerCancellation(t *testing.T) {
	source, _, history := setupHistory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source.On("GetAllPayments", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })).
		Return(envelope.OK(samplePayments()), nil).Once()

	require.NoError(t, history.Refresh(ctx))

	state := history.Snapshot()
	assert.Len(t, state.Payments, 2)
	assert.False(t, state.Refreshing)
	source.AssertExpectations(t)
}

func TestHistory_StaleResponseIsDiscarded(t *testing.T) {
	source, _, history := setupHistory()
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	stale := []payment.Payment{samplePayments()[1]}

	source.On("GetAllPayments", mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(envelope.OK(stale), nil).Once()
	source.On("GetAllPayments", mock.Anything).Return(envelope.OK(samplePayments()), nil).Once()

	done := make(chan error, 1)
	go func() { done <- history.Load(ctx) }()
	<-started

	require.NoError(t, history.Refresh(ctx))
	assert.True(t, history.Snapshot().Loading, "mount load still in flight")

	close(release)
	require.NoError(t, <-done)

	state := history.Snapshot()
	assert.Len(t, state.Payments, 2, "the newer refresh result wins")
	assert.Equal(t, uint64(1), state.Version)
	assert.False(t, state.Loading)
}
