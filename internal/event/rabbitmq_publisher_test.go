package event

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func (m *MockChannel) Close() error {
	args := m.Called()
	return args.Error(0)
}

func sampleEvent() PaymentReceivedEvent {
	return PaymentReceivedEvent{
		PaymentID:     77,
		AccountNumber: "ACC123",
		CustomerName:  "Asha Rao",
		PaymentAmount: decimal.RequireFromString("200"),
		RemainingDue:  decimal.RequireFromString("300"),
		Timestamp:     time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestRabbitMQEventPublisher_PublishPaymentReceived(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("publishes a persistent JSON message on the payment routing key", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("PublishWithContext", mock.Anything, "collections", RoutingKeyPaymentReceived, false, false,
			mock.MatchedBy(func(msg amqp.Publishing) bool {
				var got map[string]any
				if err := json.Unmarshal(msg.Body, &got); err != nil {
					return false
				}
				return msg.ContentType == "application/json" &&
					msg.DeliveryMode == amqp.Persistent &&
					msg.AppId == publisherAppID &&
					got["accountNumber"] == "ACC123" &&
					got["paymentAmount"] == "200"
			})).Return(nil).Once()
		ch.On("Close").Return(nil).Once()

		p := newPublisher(func() (amqpChannel, error) { return ch, nil }, "collections", logger)

		require.NoError(t, p.PublishPaymentReceived(context.Background(), sampleEvent()))
		ch.AssertExpectations(t)
	})

	t.Run("channel failure is returned", func(t *testing.T) {
		p := newPublisher(func() (amqpChannel, error) { return nil, errors.New("connection closed") }, "collections", logger)

		err := p.PublishPaymentReceived(context.Background(), sampleEvent())

		assert.ErrorContains(t, err, "failed to open channel")
	})

	t.Run("publish failure is returned and the channel closed", func(t *testing.T) {
		ch := new(MockChannel)
		ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, false, false, mock.Anything).
			Return(errors.New("channel/connection is not open")).Once()
		ch.On("Close").Return(nil).Once()

		p := newPublisher(func() (amqpChannel, error) { return ch, nil }, "collections", logger)

		err := p.PublishPaymentReceived(context.Background(), sampleEvent())

		assert.ErrorContains(t, err, "failed to publish message")
		ch.AssertExpectations(t)
	})
}

func TestNewRabbitMQEventPublisher_Validation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	_, err := NewRabbitMQEventPublisher(nil, "collections", logger)
	assert.ErrorContains(t, err, "connection cannot be nil")

	_, err = NewRabbitMQEventPublisher(&amqp.Connection{}, "", logger)
	assert.ErrorContains(t, err, "exchange name cannot be empty")
}

func TestLogEventPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogEventPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, p.PublishPaymentReceived(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), "account_number=ACC123")
	assert.Contains(t, buf.String(), "remaining_due=300.00")
}
