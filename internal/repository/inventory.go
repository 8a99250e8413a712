package repository

import (
	"context"

	"github.com/storeroomlabs/storeroom/internal/domain"
)

// Inventory defines read access to locations, tags and item stock.
// Item reads always reflect live stock; callers needing a consistent
// check-then-write must go through a Checkout transaction instead.
type Inventory interface {
	GetLocation(ctx context.Context, locationID string) (*domain.InventoryLocation, error)
	GetTagsByLocation(ctx context.Context, locationID string) ([]domain.Tag, error)
	GetItemsByLocation(ctx context.Context, locationID string) ([]domain.Item, error)
	GetItemByID(ctx context.Context, itemID string) (*domain.Item, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
