package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/event"
)

func newCheckoutService(inventoryRepo *MockInventoryRepository, cartRepo *MockCartRepository, checkoutRepo *MockCheckoutRepository, bus event.Bus) *service {
	return NewService(inventoryRepo, cartRepo, checkoutRepo, bus).(*service)
}

func memberUser() *domain.User {
	return &domain.User{ID: "user-1", Username: "alex", AccountType: domain.AccountTypeMember}
}

func mixedRequest() CheckoutRequest {
	return CheckoutRequest{
		LocationID: "loc-1",
		UserID:     "user-1",
		CartID:     "cart-1",
		Note:       "weekend project",
		PermanentItems: []CheckoutLine{
			{Item: domain.Item{ID: "item-1", Name: "Hammer"}, Quantity: 2},
		},
		TemporaryItems: []CheckoutLine{
			{Item: domain.Item{ID: "item-2", Name: "Drill"}, Quantity: 1},
		},
	}
}

func TestCheckoutMixedCreatesLinkedTransactions(t *testing.T) {
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	checkoutRepo := new(MockCheckoutRepository)
	tx := new(MockCheckoutTx)
	bus := &capturingBus{}

	inventoryRepo.On("GetUserByID", mock.Anything, "user-1").Return(memberUser(), nil)
	checkoutRepo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("DecrementItemStock", mock.Anything, "item-1", 2).Return(nil)
	tx.On("DecrementItemStock", mock.Anything, "item-2", 1).Return(nil)

	var inserted []*domain.Transaction
	tx.On("InsertTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).
		Run(func(args mock.Arguments) {
			inserted = append(inserted, args.Get(1).(*domain.Transaction))
		}).
		Return(nil)
	tx.On("DeleteCart", mock.Anything, "cart-1").Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc := newCheckoutService(inventoryRepo, cartRepo, checkoutRepo, bus)
	result, err := svc.Checkout(context.Background(), mixedRequest())

	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.NotEmpty(t, result.LinkID)
	assert.Contains(t, result.Message, "2 transactions")

	require.Len(t, inserted, 2)
	permanent, temporary := inserted[0], inserted[1]
	assert.Equal(t, domain.CheckoutTypePermanent, permanent.CheckoutType)
	assert.Equal(t, domain.CheckoutTypeTemporary, temporary.CheckoutType)

	// Both records carry the same link id.
	assert.Equal(t, result.LinkID, permanent.LinkID)
	assert.Equal(t, result.LinkID, temporary.LinkID)

	// Permanent completes on creation; temporary waits for check-in.
	// Neither carries a resolution time: that is stamped by check-in only.
	assert.Equal(t, domain.TransactionStatusCompleted, permanent.Status)
	assert.Nil(t, permanent.ResolvedAt)
	assert.Equal(t, domain.TransactionStatusPending, temporary.Status)
	assert.Nil(t, temporary.ResolvedAt)

	// Snapshots capture name and quantity at checkout time.
	require.Len(t, permanent.Items, 1)
	assert.Equal(t, domain.TransactionItem{ID: "item-1", Name: "Hammer", Quantity: 2}, permanent.Items[0])

	events := bus.published()
	require.Len(t, events, 1)
	payload := events[0].Payload.(event.CheckoutCompletedPayloadV1)
	assert.Equal(t, 2, payload.PermanentUnits)
	assert.Equal(t, 1, payload.TemporaryUnits)
	assert.Equal(t, result.LinkID, payload.LinkID)

	tx.AssertExpectations(t)
}

func TestCheckoutSingleTypeHasNoLinkID(t *testing.T) {
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	checkoutRepo := new(MockCheckoutRepository)
	tx := new(MockCheckoutTx)

	inventoryRepo.On("GetUserByID", mock.Anything, "user-1").Return(memberUser(), nil)
	checkoutRepo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("DecrementItemStock", mock.Anything, "item-1", 2).Return(nil)
	tx.On("InsertTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil)
	tx.On("DeleteCart", mock.Anything, "cart-1").Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	req := mixedRequest()
	req.TemporaryItems = nil

	svc := newCheckoutService(inventoryRepo, cartRepo, checkoutRepo, nil)
	result, err := svc.Checkout(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Empty(t, result.LinkID)
	assert.Contains(t, result.Message, "1 transaction created")
}

func TestCheckoutStockExhaustedRollsBack(t *testing.T) {
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	checkoutRepo := new(MockCheckoutRepository)
	tx := new(MockCheckoutTx)

	inventoryRepo.On("GetUserByID", mock.Anything, "user-1").Return(memberUser(), nil)
	checkoutRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	tx.On("DecrementItemStock", mock.Anything, "item-1", 2).Return(domain.ErrStockExhausted)
	tx.On("Rollback", mock.Anything).Return(nil)

	svc := newCheckoutService(inventoryRepo, cartRepo, checkoutRepo, nil)
	_, err := svc.Checkout(context.Background(), mixedRequest())

	// Insufficient stock is final; the attempt is not retried.
	assert.ErrorIs(t, err, domain.ErrStockExhausted)
	checkoutRepo.AssertExpectations(t)
	tx.AssertNotCalled(t, "InsertTransaction", mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCheckoutRetriesSerializationConflict(t *testing.T) {
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	checkoutRepo := new(MockCheckoutRepository)
	conflicted := new(MockCheckoutTx)
	clean := new(MockCheckoutTx)

	inventoryRepo.On("GetUserByID", mock.Anything, "user-1").Return(memberUser(), nil)
	checkoutRepo.On("BeginTx", mock.Anything).Return(conflicted, nil).Once()
	checkoutRepo.On("BeginTx", mock.Anything).Return(clean, nil).Once()

	// First attempt loses the serialization race at commit time.
	conflicted.On("DecrementItemStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	conflicted.On("InsertTransaction", mock.Anything, mock.Anything).Return(nil)
	conflicted.On("DeleteCart", mock.Anything, "cart-1").Return(nil)
	conflicted.On("Commit", mock.Anything).Return(domain.ErrWriteConflict)
	conflicted.On("Rollback", mock.Anything).Return(nil)

	clean.On("DecrementItemStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	clean.On("InsertTransaction", mock.Anything, mock.Anything).Return(nil)
	clean.On("DeleteCart", mock.Anything, "cart-1").Return(nil)
	clean.On("Commit", mock.Anything).Return(nil)
	clean.On("Rollback", mock.Anything).Return(nil)

	svc := newCheckoutService(inventoryRepo, cartRepo, checkoutRepo, nil)
	result, err := svc.Checkout(context.Background(), mixedRequest())

	require.NoError(t, err)
	assert.Len(t, result.Transactions, 2)
	checkoutRepo.AssertExpectations(t)
}

func TestCheckoutGuestRecordsDisplayName(t *testing.T) {
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	checkoutRepo := new(MockCheckoutRepository)
	tx := new(MockCheckoutTx)

	guest := &domain.User{ID: "user-9", AccountType: domain.AccountTypeGuest}
	inventoryRepo.On("GetUserByID", mock.Anything, "user-9").Return(guest, nil)
	checkoutRepo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("DecrementItemStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var inserted *domain.Transaction
	tx.On("InsertTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*domain.Transaction) }).
		Return(nil)
	tx.On("DeleteCart", mock.Anything, "cart-1").Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	req := mixedRequest()
	req.UserID = "user-9"
	req.DisplayName = "Visiting Contractor"
	req.TemporaryItems = nil

	svc := newCheckoutService(inventoryRepo, cartRepo, checkoutRepo, nil)
	_, err := svc.Checkout(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.True(t, inserted.ByGuest)
	assert.Equal(t, "Visiting Contractor", inserted.GuestDisplayName)
}

func TestCheckoutRejectsEmptyRequest(t *testing.T) {
	svc := newCheckoutService(new(MockInventoryRepository), new(MockCartRepository), new(MockCheckoutRepository), nil)

	_, err := svc.Checkout(context.Background(), CheckoutRequest{
		LocationID: "loc-1",
		UserID:     "user-1",
		CartID:     "cart-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrMsgEmptyCheckout)
}

func TestCheckoutRejectsMissingCartID(t *testing.T) {
	svc := newCheckoutService(new(MockInventoryRepository), new(MockCartRepository), new(MockCheckoutRepository), nil)

	req := mixedRequest()
	req.CartID = ""
	_, err := svc.Checkout(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrMsgMissingCartID)
}

func TestCheckoutTimestampsComeFromClock(t *testing.T) {
	inventoryRepo := new(MockInventoryRepository)
	cartRepo := new(MockCartRepository)
	checkoutRepo := new(MockCheckoutRepository)
	tx := new(MockCheckoutTx)

	inventoryRepo.On("GetUserByID", mock.Anything, "user-1").Return(memberUser(), nil)
	checkoutRepo.On("BeginTx", mock.Anything).Return(tx, nil)
	tx.On("DecrementItemStock", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	var inserted *domain.Transaction
	tx.On("InsertTransaction", mock.Anything, mock.AnythingOfType("*domain.Transaction")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*domain.Transaction) }).
		Return(nil)
	tx.On("DeleteCart", mock.Anything, "cart-1").Return(nil)
	tx.On("Commit", mock.Anything).Return(nil)
	tx.On("Rollback", mock.Anything).Return(nil)

	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc := newCheckoutService(inventoryRepo, cartRepo, checkoutRepo, nil)
	svc.now = func() time.Time { return fixed }

	req := mixedRequest()
	req.TemporaryItems = nil
	_, err := svc.Checkout(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, fixed, inserted.CreatedAt)
	assert.Nil(t, inserted.ResolvedAt)
}
