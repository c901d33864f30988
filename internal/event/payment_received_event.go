package event

import (
	"time"

	"github.com/shopspring/decimal"
)

const RoutingKeyPaymentReceived = "payment.received"

// PaymentReceivedEvent is published once a payment has been committed.
type PaymentReceivedEvent struct {
	PaymentID     int64           `json:"paymentId"`
	AccountNumber string          `json:"accountNumber"`
	CustomerName  string          `json:"customerName"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	RemainingDue  decimal.Decimal `json:"remainingDue"`
	Timestamp     time.Time       `json:"timestamp"`
}
