package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/repository"
)

// CheckoutRepository implements repository.Checkout for PostgreSQL
type CheckoutRepository struct {
	db *pgxpool.Pool
}

// NewCheckoutRepository creates a new CheckoutRepository
func NewCheckoutRepository(db *pgxpool.Pool) repository.Checkout {
	return &CheckoutRepository{db: db}
}

// CheckoutTx implements repository.CheckoutTx
type CheckoutTx struct {
	tx pgx.Tx
}

// BeginTx starts a serializable transaction. Serializable isolation makes the
// check-then-write stock guards atomic with respect to concurrent checkouts
// and check-ins touching the same items.
func (r *CheckoutRepository) BeginTx(ctx context.Context) (repository.CheckoutTx, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	return &CheckoutTx{tx: tx}, nil
}

// GetTransactionsByLocation retrieves transactions for a location filtered by status
func (r *CheckoutRepository) GetTransactionsByLocation(ctx context.Context, locationID string, status domain.TransactionStatus) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, COALESCE(link_id, ''), location_id, user_id, action_type,
		       checkout_type, status, item_count, items, note, by_guest,
		       COALESCE(guest_display_name, ''), created_at, resolved_at
		FROM transactions
		WHERE location_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, locationID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRowIteration, err)
	}

	return txns, nil
}

// Commit commits the transaction
func (t *CheckoutTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return domain.ErrWriteConflict
		}
		return err
	}
	return nil
}

// Rollback rolls back the transaction
func (t *CheckoutTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// DecrementItemStock atomically checks and decrements an item's stock.
// The WHERE guard makes the check and the write one statement, so two
// concurrent checkouts can never drive stock below zero.
func (t *CheckoutTx) DecrementItemStock(ctx context.Context, itemID string, quantity int) error {
	query := `
		UPDATE items
		SET quantity = quantity - $1
		WHERE item_id = $2 AND deleted_at IS NULL AND quantity >= $1
	`

	result, err := t.tx.Exec(ctx, query, quantity, itemID)
	if err != nil {
		if isSerializationFailure(err) {
			return domain.ErrWriteConflict
		}
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrStockExhausted, itemID)
	}

	return nil
}

// IncrementItemStock restores stock by the given amount
func (t *CheckoutTx) IncrementItemStock(ctx context.Context, itemID string, quantity int) error {
	query := `
		UPDATE items
		SET quantity = quantity + $1
		WHERE item_id = $2
	`

	result, err := t.tx.Exec(ctx, query, quantity, itemID)
	if err != nil {
		if isSerializationFailure(err) {
			return domain.ErrWriteConflict
		}
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s", domain.ErrItemNotFound, itemID)
	}

	return nil
}

// InsertTransaction persists a transaction record with its embedded snapshot
func (t *CheckoutTx) InsertTransaction(ctx context.Context, txn *domain.Transaction) error {
	itemsJSON, err := json.Marshal(txn.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction snapshot: %w", err)
	}

	query := `
		INSERT INTO transactions (
			transaction_id, link_id, location_id, user_id, action_type,
			checkout_type, status, item_count, items, note, by_guest,
			guest_display_name, created_at
		)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13)
	`

	_, err = t.tx.Exec(ctx, query,
		txn.ID,
		txn.LinkID,
		txn.LocationID,
		txn.UserID,
		txn.ActionType,
		txn.CheckoutType,
		txn.Status,
		txn.ItemCount,
		itemsJSON,
		txn.Note,
		txn.ByGuest,
		txn.GuestDisplayName,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// DeleteCart removes the consumed cart inside the atomic unit
func (t *CheckoutTx) DeleteCart(ctx context.Context, cartID string) error {
	query := `DELETE FROM carts WHERE cart_id = $1`

	if _, err := t.tx.Exec(ctx, query, cartID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}

// GetTransactionsForUpdate loads and row-locks the given transactions so a
// concurrent check-in of the same transactions blocks until this one commits.
func (t *CheckoutTx) GetTransactionsForUpdate(ctx context.Context, transactionIDs []string) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, COALESCE(link_id, ''), location_id, user_id, action_type,
		       checkout_type, status, item_count, items, note, by_guest,
		       COALESCE(guest_display_name, ''), created_at, resolved_at
		FROM transactions
		WHERE transaction_id = ANY($1)
		FOR UPDATE
	`

	rows, err := t.tx.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRowIteration, err)
	}

	return txns, nil
}

// MarkTransactionsCompleted transitions the given transactions to COMPLETED
func (t *CheckoutTx) MarkTransactionsCompleted(ctx context.Context, transactionIDs []string, resolvedAt time.Time) error {
	query := `
		UPDATE transactions
		SET status = $1, resolved_at = $2
		WHERE transaction_id = ANY($3) AND status = $4
	`

	result, err := t.tx.Exec(ctx, query,
		domain.TransactionStatusCompleted,
		resolvedAt,
		transactionIDs,
		domain.TransactionStatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to mark transactions completed: %w", err)
	}
	if int(result.RowsAffected()) != len(transactionIDs) {
		return fmt.Errorf("%w: expected %d pending transactions, updated %d",
			domain.ErrNotPending, len(transactionIDs), result.RowsAffected())
	}

	return nil
}

// scanTransaction scans one transaction row including its JSONB snapshot
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var itemsJSON []byte

	err := row.Scan(
		&txn.ID,
		&txn.LinkID,
		&txn.LocationID,
		&txn.UserID,
		&txn.ActionType,
		&txn.CheckoutType,
		&txn.Status,
		&txn.ItemCount,
		&itemsJSON,
		&txn.Note,
		&txn.ByGuest,
		&txn.GuestDisplayName,
		&txn.CreatedAt,
		&txn.ResolvedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &txn.Items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
	}

	return &txn, nil
}
