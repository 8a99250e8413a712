package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/storeroomlabs/storeroom/internal/concurrency"
	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/event"
	"github.com/storeroomlabs/storeroom/internal/logger"
	"github.com/storeroomlabs/storeroom/internal/metrics"
	"github.com/storeroomlabs/storeroom/internal/repository"
)

// Checkout commits a reconciled cart as one atomic unit: stock is
// decremented with per-item guards, one transaction record is created per
// non-empty checkout-type partition, and the cart is deleted. Any failure
// rolls the whole unit back. Serialization conflicts are retried under a
// bounded policy; a stock guard failure is surfaced as
// domain.ErrStockExhausted and never retried, because the stock genuinely
// is not there.
func (s *service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCheckoutCalled,
		"user_id", req.UserID,
		"location_id", req.LocationID,
		"permanent_lines", len(req.PermanentItems),
		"temporary_lines", len(req.TemporaryItems),
	)

	if len(req.PermanentItems) == 0 && len(req.TemporaryItems) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyCheckout)
	}
	if req.CartID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingCartID)
	}

	user, err := s.inventoryRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var result *CheckoutResult
	err = concurrency.Retry(ctx, concurrency.DefaultMaxAttempts, func(ctx context.Context) error {
		var attemptErr error
		result, attemptErr = s.commitCheckout(ctx, req, user)
		if errors.Is(attemptErr, domain.ErrWriteConflict) {
			metrics.WriteConflictRetries.Inc()
		}
		return attemptErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrStockExhausted) {
			log.Info(LogMsgCheckoutOutOfStock, "user_id", req.UserID, "location_id", req.LocationID)
			metrics.StockExhaustions.Inc()
		}
		return nil, err
	}

	log.Info(LogMsgCheckoutCommitted,
		"user_id", req.UserID,
		"location_id", req.LocationID,
		"transactions", len(result.Transactions),
		"link_id", result.LinkID,
	)

	return result, nil
}

// commitCheckout runs one attempt of the atomic unit.
func (s *service) commitCheckout(ctx context.Context, req CheckoutRequest, user *domain.User) (*CheckoutResult, error) {
	tx, err := s.checkoutRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// A shared link id ties the two records of a mixed checkout together.
	linkID := ""
	if len(req.PermanentItems) > 0 && len(req.TemporaryItems) > 0 {
		linkID = uuid.NewString()
	}

	now := s.now()
	partitions := []struct {
		checkoutType domain.CheckoutType
		lines        []CheckoutLine
	}{
		{domain.CheckoutTypePermanent, req.PermanentItems},
		{domain.CheckoutTypeTemporary, req.TemporaryItems},
	}

	refs := make([]TransactionRef, 0, 2)
	transactionIDs := make([]string, 0, 2)
	unitsByType := make(map[domain.CheckoutType]int, 2)
	for _, p := range partitions {
		if len(p.lines) == 0 {
			continue
		}

		snapshot := make([]domain.TransactionItem, 0, len(p.lines))
		partitionUnits := 0
		for _, line := range p.lines {
			if line.Quantity <= 0 {
				return nil, fmt.Errorf("%w: non-positive quantity for item %s", domain.ErrInvalidInput, line.Item.ID)
			}
			if err := tx.DecrementItemStock(ctx, line.Item.ID, line.Quantity); err != nil {
				return nil, err
			}
			snapshot = append(snapshot, domain.TransactionItem{
				ID:       line.Item.ID,
				Name:     line.Item.Name,
				Quantity: line.Quantity,
			})
			partitionUnits += line.Quantity
		}
		unitsByType[p.checkoutType] = partitionUnits

		txn := &domain.Transaction{
			ID:           uuid.NewString(),
			LinkID:       linkID,
			LocationID:   req.LocationID,
			UserID:       req.UserID,
			ActionType:   domain.ActionTypeCheckOut,
			CheckoutType: p.checkoutType,
			Status:       domain.TransactionStatusPending,
			ItemCount:    partitionUnits,
			Items:        snapshot,
			Note:         req.Note,
			ByGuest:      user.IsGuest(),
			CreatedAt:    now,
		}
		if p.checkoutType == domain.CheckoutTypePermanent {
			// Permanent takes have no return leg; the record is final on
			// creation. ResolvedAt stays null: only a check-in resolves.
			txn.Status = domain.TransactionStatusCompleted
		}
		if user.IsGuest() {
			txn.GuestDisplayName = req.DisplayName
		}

		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return nil, err
		}
		refs = append(refs, TransactionRef{ID: txn.ID, CreatedAt: txn.CreatedAt})
		transactionIDs = append(transactionIDs, txn.ID)
	}

	if err := tx.DeleteCart(ctx, req.CartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.publish(ctx, event.NewCheckoutCompletedEvent(
		req.UserID, req.LocationID, linkID, transactionIDs,
		unitsByType[domain.CheckoutTypePermanent], unitsByType[domain.CheckoutTypeTemporary],
	))

	return &CheckoutResult{
		Transactions: refs,
		LinkID:       linkID,
		Message:      checkoutSuccessMessage(len(refs)),
	}, nil
}
