package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeOf(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, outcomeSuccess, outcomeOf(context.Background(), envelope.OK(1), nil))
	assert.Equal(t, outcomeRejected, outcomeOf(context.Background(), envelope.Fail[int]("no"), nil))
	assert.Equal(t, outcomeTransport, outcomeOf(context.Background(), envelope.Envelope[int]{}, errors.New("boom")))
	assert.Equal(t, outcomeCancelled, outcomeOf(cancelled, envelope.Envelope[int]{}, context.Canceled))
}

func TestObserve(t *testing.T) {
	backendCallsTotal.Reset()
	backendCallDuration.Reset()

	observe(opSubmitPayment, outcomeSuccess, 15*time.Millisecond)
	observe(opSubmitPayment, outcomeSuccess, 25*time.Millisecond)
	observe(opFetchCustomers, outcomeTransport, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(backendCallsTotal.WithLabelValues(opSubmitPayment, outcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(backendCallsTotal.WithLabelValues(opFetchCustomers, outcomeTransport)))
	assert.Equal(t, 2, testutil.CollectAndCount(backendCallDuration))
}
