package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storeroomlabs/storeroom/internal/checkout"
	"github.com/storeroomlabs/storeroom/internal/domain"
)

// MockCheckoutService mocks checkout.Service
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) ReconcileInventory(ctx context.Context, userID, locationID string) (*checkout.ReconcileResult, error) {
	args := m.Called(ctx, userID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.ReconcileResult), args.Error(1)
}

func (m *MockCheckoutService) Checkout(ctx context.Context, req checkout.CheckoutRequest) (*checkout.CheckoutResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CheckoutResult), args.Error(1)
}

func (m *MockCheckoutService) CheckIn(ctx context.Context, transactionIDs []string) (*checkout.CheckInResult, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CheckInResult), args.Error(1)
}

func (m *MockCheckoutService) MutateCart(ctx context.Context, mutation checkout.CartMutation) error {
	args := m.Called(ctx, mutation)
	return args.Error(0)
}

func (m *MockCheckoutService) PendingTransactions(ctx context.Context, locationID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
