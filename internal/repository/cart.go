package repository

import (
	"context"

	"github.com/storeroomlabs/storeroom/internal/domain"
)

// Cart defines the write path for persisted carts and cart lines.
//
// GetCartWithItems returns (nil, nil) when the user has no cart at the
// location. CreateCart returns domain.ErrCartExists on a concurrent
// creation race so the caller can re-fetch instead of failing.
// UpdateCartItemQuantity and DeleteCartItem are guarded by the line's
// version column and return domain.ErrWriteConflict when another writer
// got there first.
type Cart interface {
	GetCartWithItems(ctx context.Context, userID, locationID string) (*domain.Cart, error)
	CreateCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, cartID string) error

	GetCartItem(ctx context.Context, cartID, itemID string, checkoutType domain.CheckoutType) (*domain.CartItem, error)
	InsertCartItem(ctx context.Context, line *domain.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, cartItemID string, quantity, version int) error
	DeleteCartItem(ctx context.Context, cartItemID string, version int) error
}
