// Package ledger records loan EMI payments against customer accounts.
package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/event"
	"github.com/shopspring/decimal"
)

// Account is the locked view of a customer row used while recording a payment.
type Account struct {
	AccountNumber string
	CustomerName  string
	EMIDue        decimal.Decimal
}

type Repository interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)

	ListPayments(ctx context.Context) ([]payment.Payment, error)

	FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*Account, error)

	InsertPaymentInTx(ctx context.Context, tx pgx.Tx, accountNumber string, amount decimal.Decimal, status string) (int64, error)

	UpdateEMIDueInTx(ctx context.Context, tx pgx.Tx, accountNumber string, emiDue decimal.Decimal) error

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}

type Service interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)

	ListPayments(ctx context.Context) ([]payment.Payment, error)

	RecordPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (*payment.Receipt, error)
}

type EventPublisher interface {
	PublishPaymentReceived(ctx context.Context, evt event.PaymentReceivedEvent) error
}
