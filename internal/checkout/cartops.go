package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/storeroomlabs/storeroom/internal/concurrency"
	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/logger"
	"github.com/storeroomlabs/storeroom/internal/metrics"
)

// MutateCart applies one cart operation. ADD and REMOVE are retried under the
// bounded policy: a lost version race or a lost line-creation race means
// another request for the same user landed first, so the attempt re-reads the
// line and reapplies the delta on top of it.
func (s *service) MutateCart(ctx context.Context, m CartMutation) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgMutateCartCalled,
		"user_id", m.UserID,
		"location_id", m.LocationID,
		"action", m.Action,
		"item_id", m.ItemID,
	)

	if !m.Action.Valid() {
		return fmt.Errorf("%w: unknown cart action %q", domain.ErrInvalidInput, m.Action)
	}

	if m.Action == domain.CartActionClear {
		if err := s.clearCart(ctx, m.UserID, m.LocationID); err != nil {
			return err
		}
		metrics.CartMutations.WithLabelValues(string(m.Action)).Inc()
		return nil
	}

	if !m.CheckoutType.Valid() {
		return fmt.Errorf("%w: unknown checkout type %q", domain.ErrInvalidInput, m.CheckoutType)
	}
	if m.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}

	err := concurrency.Retry(ctx, concurrency.DefaultMaxAttempts, func(ctx context.Context) error {
		var attemptErr error
		switch m.Action {
		case domain.CartActionAdd:
			attemptErr = s.addToCart(ctx, m)
		case domain.CartActionRemove:
			attemptErr = s.removeFromCart(ctx, m)
		}
		if errors.Is(attemptErr, domain.ErrWriteConflict) {
			metrics.WriteConflictRetries.Inc()
		}
		return attemptErr
	})
	if err != nil {
		return err
	}

	metrics.CartMutations.WithLabelValues(string(m.Action)).Inc()
	return nil
}

// addToCart creates the line or increments an existing one.
func (s *service) addToCart(ctx context.Context, m CartMutation) error {
	item, err := s.inventoryRepo.GetItemByID(ctx, m.ItemID)
	if err != nil {
		return err
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: item %s", domain.ErrNegativeQuantity, item.ID)
	}

	cart, err := s.getOrCreateCart(ctx, m.UserID, m.LocationID)
	if err != nil {
		return err
	}

	line, err := s.cartRepo.GetCartItem(ctx, cart.ID, item.ID, m.CheckoutType)
	if err != nil {
		return err
	}

	if line == nil {
		return s.cartRepo.InsertCartItem(ctx, &domain.CartItem{
			ID:           uuid.NewString(),
			CartID:       cart.ID,
			ItemID:       item.ID,
			Quantity:     m.Quantity,
			CheckoutType: m.CheckoutType,
		})
	}

	return s.cartRepo.UpdateCartItemQuantity(ctx, line.ID, line.Quantity+m.Quantity, line.Version)
}

// removeFromCart decrements a line, deleting it when the quantity reaches
// zero. Removing more than the line holds clamps to deletion.
func (s *service) removeFromCart(ctx context.Context, m CartMutation) error {
	cart, err := s.cartRepo.GetCartWithItems(ctx, m.UserID, m.LocationID)
	if err != nil {
		return err
	}
	if cart == nil {
		return domain.ErrCartNotFound
	}

	line, err := s.cartRepo.GetCartItem(ctx, cart.ID, m.ItemID, m.CheckoutType)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrCartItemNotFound
	}

	remaining := line.Quantity - m.Quantity
	if remaining <= 0 {
		return s.cartRepo.DeleteCartItem(ctx, line.ID, line.Version)
	}
	return s.cartRepo.UpdateCartItemQuantity(ctx, line.ID, remaining, line.Version)
}

// clearCart deletes the user's cart at the location. Clearing a cart that
// does not exist is a no-op, not an error.
func (s *service) clearCart(ctx context.Context, userID, locationID string) error {
	cart, err := s.cartRepo.GetCartWithItems(ctx, userID, locationID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}

	if err := s.cartRepo.DeleteCart(ctx, cart.ID); err != nil {
		// A concurrent checkout may have consumed the cart between the read
		// and the delete; the end state is the same.
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil
		}
		return err
	}

	logger.FromContext(ctx).Info(LogMsgCartCleared, "user_id", userID, "location_id", locationID, "cart_id", cart.ID)
	return nil
}

// getOrCreateCart fetches the user's cart at the location, creating it when
// absent. A creation race is resolved by re-fetching the winner's cart.
func (s *service) getOrCreateCart(ctx context.Context, userID, locationID string) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetCartWithItems(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &domain.Cart{
		ID:         uuid.NewString(),
		UserID:     userID,
		LocationID: locationID,
	}
	err = s.cartRepo.CreateCart(ctx, cart)
	if errors.Is(err, domain.ErrCartExists) {
		logger.FromContext(ctx).Info(LogMsgCartCreateRaceLost, "user_id", userID, "location_id", locationID)
		existing, err := s.cartRepo.GetCartWithItems(ctx, userID, locationID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			// The winner's cart was consumed before we could read it.
			return nil, domain.ErrWriteConflict
		}
		return existing, nil
	}
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// PendingTransactions lists the location's transactions awaiting check-in.
func (s *service) PendingTransactions(ctx context.Context, locationID string) ([]domain.Transaction, error) {
	return s.checkoutRepo.GetTransactionsByLocation(ctx, locationID, domain.TransactionStatusPending)
}
