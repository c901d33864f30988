package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	ret := _m.Called(ctx)

	var r0 []customer.Customer
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]customer.Customer)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) ListPayments(ctx context.Context) ([]payment.Payment, error) {
	ret := _m.Called(ctx)

	var r0 []payment.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]payment.Payment)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*Account, error) {
	ret := _m.Called(ctx, tx, accountNumber)

	var r0 *Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*Account)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) InsertPaymentInTx(ctx context.Context, tx pgx.Tx, accountNumber string, amount decimal.Decimal, status string) (int64, error) {
	ret := _m.Called(ctx, tx, accountNumber, amount, status)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *MockRepository) UpdateEMIDueInTx(ctx context.Context, tx pgx.Tx, accountNumber string, emiDue decimal.Decimal) error {
	ret := _m.Called(ctx, tx, accountNumber, emiDue)
	return ret.Error(0)
}

func (_m *MockRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	ret := _m.Called(ctx)

	var r0 pgx.Tx
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(pgx.Tx)
	}
	return r0, ret.Error(1)
}

func (_m *MockRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)
	return ret.Error(0)
}

func (_m *MockRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)
	return ret.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (_m *MockEventPublisher) PublishPaymentReceived(ctx context.Context, evt event.PaymentReceivedEvent) error {
	ret := _m.Called(ctx, evt)
	return ret.Error(0)
}
