package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/event"
	"github.com/storeroomlabs/storeroom/internal/repository"
)

// MockInventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) GetLocation(ctx context.Context, locationID string) (*domain.InventoryLocation, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryLocation), args.Error(1)
}

func (m *MockInventoryRepository) GetTagsByLocation(ctx context.Context, locationID string) ([]domain.Tag, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *MockInventoryRepository) GetItemsByLocation(ctx context.Context, locationID string) ([]domain.Item, error) {
	args := m.Called(ctx, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockInventoryRepository) GetItemByID(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockInventoryRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockCartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetCartWithItems(ctx context.Context, userID, locationID string) (*domain.Cart, error) {
	args := m.Called(ctx, userID, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) CreateCart(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteCart(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *MockCartRepository) GetCartItem(ctx context.Context, cartID, itemID string, checkoutType domain.CheckoutType) (*domain.CartItem, error) {
	args := m.Called(ctx, cartID, itemID, checkoutType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) InsertCartItem(ctx context.Context, line *domain.CartItem) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateCartItemQuantity(ctx context.Context, cartItemID string, quantity, version int) error {
	args := m.Called(ctx, cartItemID, quantity, version)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteCartItem(ctx context.Context, cartItemID string, version int) error {
	args := m.Called(ctx, cartItemID, version)
	return args.Error(0)
}

// MockCheckoutRepository
type MockCheckoutRepository struct {
	mock.Mock
}

func (m *MockCheckoutRepository) BeginTx(ctx context.Context) (repository.CheckoutTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CheckoutTx), args.Error(1)
}

func (m *MockCheckoutRepository) GetTransactionsByLocation(ctx context.Context, locationID string, status domain.TransactionStatus) ([]domain.Transaction, error) {
	args := m.Called(ctx, locationID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockCheckoutTx
type MockCheckoutTx struct {
	mock.Mock
}

func (m *MockCheckoutTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutTx) DecrementItemStock(ctx context.Context, itemID string, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCheckoutTx) IncrementItemStock(ctx context.Context, itemID string, quantity int) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockCheckoutTx) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockCheckoutTx) DeleteCart(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *MockCheckoutTx) GetTransactionsForUpdate(ctx context.Context, transactionIDs []string) ([]domain.Transaction, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockCheckoutTx) MarkTransactionsCompleted(ctx context.Context, transactionIDs []string, resolvedAt time.Time) error {
	args := m.Called(ctx, transactionIDs, resolvedAt)
	return args.Error(0)
}

// capturingBus records published events for assertions.
type capturingBus struct {
	mu     sync.Mutex
	events []event.Event
}

func (b *capturingBus) Publish(_ context.Context, e event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return nil
}

func (b *capturingBus) Subscribe(event.Type, event.Handler) {}

func (b *capturingBus) published() []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Event, len(b.events))
	copy(out, b.events)
	return out
}
