package customer

import (
	"context"

	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (_m *MockGateway) FetchCustomers(ctx context.Context) (envelope.Envelope[[]Customer], error) {
	ret := _m.Called(ctx)

	var r0 envelope.Envelope[[]Customer]
	if rf, ok := ret.Get(0).(func(context.Context) envelope.Envelope[[]Customer]); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(envelope.Envelope[[]Customer])
	}

	return r0, ret.Error(1)
}

func (_m *MockGateway) SubmitPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (envelope.Envelope[payment.Receipt], error) {
	ret := _m.Called(ctx, accountNumber, amount)

	var r0 envelope.Envelope[payment.Receipt]
	if rf, ok := ret.Get(0).(func(context.Context, string, decimal.Decimal) envelope.Envelope[payment.Receipt]); ok {
		r0 = rf(ctx, accountNumber, amount)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(envelope.Envelope[payment.Receipt])
	}

	return r0, ret.Error(1)
}
