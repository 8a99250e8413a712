package domain

import "time"

// Item represents a stocked item at an inventory location.
// Quantity is the authoritative current stock count; it is decremented by
// checkouts and incremented by check-ins.
type Item struct {
	ID         string     `json:"item_id" db:"item_id"`
	LocationID string     `json:"location_id" db:"location_id"`
	TagID      string     `json:"tag_id,omitempty" db:"tag_id"`
	Name       string     `json:"name" db:"item_name"`
	Quantity   int        `json:"quantity" db:"quantity"`
	Note       string     `json:"note,omitempty" db:"note"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// InventoryLocation is a physical storage site owning items, tags, carts and
// transactions scoped to it.
type InventoryLocation struct {
	ID        string    `json:"location_id" db:"location_id"`
	Name      string    `json:"location_name" db:"location_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Tag groups items within a location.
type Tag struct {
	ID         string `json:"tag_id" db:"tag_id"`
	LocationID string `json:"location_id" db:"location_id"`
	Name       string `json:"tag_name" db:"tag_name"`
}
