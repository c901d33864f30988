package web_test

import (
	"context"

	"github.com/shanavasvb/payment-app-frontend/internal/domain/customer"
	"github.com/shanavasvb/payment-app-frontend/internal/domain/payment"
	"github.com/stretchr/testify/mock"
)

type MockCollectionScreen struct {
	mock.Mock
}

func (_m *MockCollectionScreen) Snapshot() customer.State {
	ret := _m.Called()
	return ret.Get(0).(customer.State)
}

func (_m *MockCollectionScreen) ChangeAccountNumber(input string) {
	_m.Called(input)
}

func (_m *MockCollectionScreen) ChangePaymentAmount(input string) {
	_m.Called(input)
}

func (_m *MockCollectionScreen) SubmitPayment(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

func (_m *MockCollectionScreen) DismissBanner() {
	_m.Called()
}

func (_m *MockCollectionScreen) Refresh(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

type MockHistoryScreen struct {
	mock.Mock
}

func (_m *MockHistoryScreen) Snapshot() payment.HistoryState {
	ret := _m.Called()
	return ret.Get(0).(payment.HistoryState)
}

func (_m *MockHistoryScreen) Refresh(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

type MockNavigator struct {
	mock.Mock
}

func (_m *MockNavigator) Visit(ctx context.Context, screen string) (bool, error) {
	ret := _m.Called(ctx, screen)
	return ret.Bool(0), ret.Error(1)
}
