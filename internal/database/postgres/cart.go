package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/repository"
)

// CartRepository implements repository.Cart for PostgreSQL
type CartRepository struct {
	db *pgxpool.Pool
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(db *pgxpool.Pool) repository.Cart {
	return &CartRepository{db: db}
}

// GetCartWithItems retrieves the user's cart for a location with its lines
// joined against the live item rows. Returns (nil, nil) when no cart exists.
func (r *CartRepository) GetCartWithItems(ctx context.Context, userID, locationID string) (*domain.Cart, error) {
	query := `
		SELECT cart_id, user_id, location_id
		FROM carts
		WHERE user_id = $1 AND location_id = $2
	`

	var cart domain.Cart
	err := r.db.QueryRow(ctx, query, userID, locationID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.LocationID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // No cart yet, not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	itemsQuery := `
		SELECT ci.cart_item_id, ci.cart_id, ci.item_id, ci.quantity, ci.checkout_type, ci.version,
		       i.item_name, i.note, i.quantity
		FROM cart_items ci
		JOIN items i ON i.item_id = ci.item_id
		WHERE ci.cart_id = $1
		ORDER BY i.item_name, ci.checkout_type
	`

	rows, err := r.db.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CartItem
		err := rows.Scan(
			&line.ID,
			&line.CartID,
			&line.ItemID,
			&line.Quantity,
			&line.CheckoutType,
			&line.Version,
			&line.ItemName,
			&line.ItemNote,
			&line.ItemQuantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRowIteration, err)
	}

	return &cart, nil
}

// CreateCart inserts a new empty cart. A concurrent creation for the same
// (user, location) pair surfaces as domain.ErrCartExists so the caller can
// re-fetch instead of failing.
func (r *CartRepository) CreateCart(ctx context.Context, cart *domain.Cart) error {
	query := `
		INSERT INTO carts (cart_id, user_id, location_id)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query, cart.ID, cart.UserID, cart.LocationID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCartExists
		}
		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

// DeleteCart removes a cart; its lines cascade
func (r *CartRepository) DeleteCart(ctx context.Context, cartID string) error {
	query := `DELETE FROM carts WHERE cart_id = $1`

	result, err := r.db.Exec(ctx, query, cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCartNotFound
	}

	return nil
}

// GetCartItem retrieves the line for one (cart, item, checkout_type) triple.
// Returns (nil, nil) when no such line exists.
func (r *CartRepository) GetCartItem(ctx context.Context, cartID, itemID string, checkoutType domain.CheckoutType) (*domain.CartItem, error) {
	query := `
		SELECT cart_item_id, cart_id, item_id, quantity, checkout_type, version
		FROM cart_items
		WHERE cart_id = $1 AND item_id = $2 AND checkout_type = $3
	`

	var line domain.CartItem
	err := r.db.QueryRow(ctx, query, cartID, itemID, checkoutType).Scan(
		&line.ID,
		&line.CartID,
		&line.ItemID,
		&line.Quantity,
		&line.CheckoutType,
		&line.Version,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	return &line, nil
}

// InsertCartItem inserts a new cart line
func (r *CartRepository) InsertCartItem(ctx context.Context, line *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (cart_item_id, cart_id, item_id, quantity, checkout_type)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		line.ID,
		line.CartID,
		line.ItemID,
		line.Quantity,
		line.CheckoutType,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Another request created the same line concurrently; the caller
			// re-reads and increments instead.
			return domain.ErrWriteConflict
		}
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	return nil
}

// UpdateCartItemQuantity sets a line's quantity guarded by its version.
// Zero rows affected means another writer bumped the version first.
func (r *CartRepository) UpdateCartItemQuantity(ctx context.Context, cartItemID string, quantity, version int) error {
	query := `
		UPDATE cart_items
		SET quantity = $1, version = version + 1
		WHERE cart_item_id = $2 AND version = $3
	`

	result, err := r.db.Exec(ctx, query, quantity, cartItemID, version)
	if err != nil {
		if isSerializationFailure(err) {
			return domain.ErrWriteConflict
		}
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrWriteConflict
	}

	return nil
}

// DeleteCartItem removes a line guarded by its version
func (r *CartRepository) DeleteCartItem(ctx context.Context, cartItemID string, version int) error {
	query := `
		DELETE FROM cart_items
		WHERE cart_item_id = $1 AND version = $2
	`

	result, err := r.db.Exec(ctx, query, cartItemID, version)
	if err != nil {
		if isSerializationFailure(err) {
			return domain.ErrWriteConflict
		}
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrWriteConflict
	}

	return nil
}
