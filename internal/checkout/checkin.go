package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/storeroomlabs/storeroom/internal/concurrency"
	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/event"
	"github.com/storeroomlabs/storeroom/internal/logger"
	"github.com/storeroomlabs/storeroom/internal/metrics"
	"github.com/storeroomlabs/storeroom/internal/repository"
)

// CheckIn resolves pending temporary transactions: each embedded snapshot is
// validated, its stock restored line by line, and the transaction moved to
// COMPLETED, all inside one atomic unit. Restoration amounts come from the
// snapshot alone, never from live item rows, so renames and deletions after
// checkout cannot change what a return puts back. A malformed snapshot fails
// the whole unit before any stock is written.
func (s *service) CheckIn(ctx context.Context, transactionIDs []string) (*CheckInResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCheckInCalled, "transaction_count", len(transactionIDs))

	if len(transactionIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyCheckIn)
	}

	var result *CheckInResult
	err := concurrency.Retry(ctx, concurrency.DefaultMaxAttempts, func(ctx context.Context) error {
		var attemptErr error
		result, attemptErr = s.commitCheckIn(ctx, transactionIDs)
		if errors.Is(attemptErr, domain.ErrWriteConflict) {
			metrics.WriteConflictRetries.Inc()
		}
		return attemptErr
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgCheckInCompleted, "transaction_count", len(result.Transactions))
	return result, nil
}

// commitCheckIn runs one attempt of the check-in atomic unit.
func (s *service) commitCheckIn(ctx context.Context, transactionIDs []string) (*CheckInResult, error) {
	tx, err := s.checkoutRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	txns, err := tx.GetTransactionsForUpdate(ctx, transactionIDs)
	if err != nil {
		return nil, err
	}
	if len(txns) != len(transactionIDs) {
		return nil, fmt.Errorf("%w: requested %d transactions, found %d",
			domain.ErrTransactionNotFound, len(transactionIDs), len(txns))
	}

	// Validate everything before restoring anything.
	for _, txn := range txns {
		if txn.CheckoutType != domain.CheckoutTypeTemporary || txn.Status != domain.TransactionStatusPending {
			return nil, fmt.Errorf("%w: transaction %s is %s/%s",
				domain.ErrNotPending, txn.ID, txn.CheckoutType, txn.Status)
		}
		if err := domain.ValidateSnapshot(txn.Items); err != nil {
			return nil, err
		}
	}

	unitsRestored := 0
	for _, txn := range txns {
		for _, item := range txn.Items {
			if err := tx.IncrementItemStock(ctx, item.ID, item.Quantity); err != nil {
				return nil, err
			}
			unitsRestored += item.Quantity
		}
	}

	resolvedAt := s.now()
	if err := tx.MarkTransactionsCompleted(ctx, transactionIDs, resolvedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	s.publish(ctx, event.NewCheckinCompletedEvent(transactionIDs, unitsRestored))

	refs := make([]CheckinRef, 0, len(txns))
	for _, txn := range txns {
		refs = append(refs, CheckinRef{
			ID:         txn.ID,
			Status:     domain.TransactionStatusCompleted,
			ResolvedAt: resolvedAt,
		})
	}
	return &CheckInResult{Transactions: refs}, nil
}
