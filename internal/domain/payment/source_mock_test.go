package payment

import (
	"context"

	"github.com/shanavasvb/payment-app-frontend/internal/pkg/envelope"
	"github.com/stretchr/testify/mock"
)

type MockSource struct {
	mock.Mock
}

func (_m *MockSource) GetAllPayments(ctx context.Context) (envelope.Envelope[[]Payment], error) {
	ret := _m.Called(ctx)

	var r0 envelope.Envelope[[]Payment]
	if rf, ok := ret.Get(0).(func(context.Context) envelope.Envelope[[]Payment]); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(envelope.Envelope[[]Payment])
	}

	return r0, ret.Error(1)
}
