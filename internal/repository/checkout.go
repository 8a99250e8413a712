package repository

import (
	"context"
	"time"

	"github.com/storeroomlabs/storeroom/internal/domain"
)

// Checkout defines the transactional boundary for the two atomic units of
// the system: committing a checkout and resolving a check-in.
type Checkout interface {
	BeginTx(ctx context.Context) (CheckoutTx, error)
	GetTransactionsByLocation(ctx context.Context, locationID string, status domain.TransactionStatus) ([]domain.Transaction, error)
}

// CheckoutTx groups the reads and writes of one atomic unit. All operations
// run inside a single serializable database transaction: either every write
// commits or none do.
type CheckoutTx interface {
	Tx

	// DecrementItemStock atomically checks and decrements an item's stock.
	// Returns domain.ErrStockExhausted when the item has fewer than
	// quantity units left; no write occurs in that case.
	DecrementItemStock(ctx context.Context, itemID string, quantity int) error

	// IncrementItemStock restores stock by the given amount.
	IncrementItemStock(ctx context.Context, itemID string, quantity int) error

	InsertTransaction(ctx context.Context, tx *domain.Transaction) error
	DeleteCart(ctx context.Context, cartID string) error

	// GetTransactionsForUpdate loads and row-locks the given transactions.
	GetTransactionsForUpdate(ctx context.Context, transactionIDs []string) ([]domain.Transaction, error)
	MarkTransactionsCompleted(ctx context.Context, transactionIDs []string, resolvedAt time.Time) error
}
