package domain

// CheckoutType distinguishes items taken outright from items borrowed.
type CheckoutType string

const (
	// CheckoutTypePermanent items are taken outright; their transaction
	// completes immediately.
	CheckoutTypePermanent CheckoutType = "PERMANENT"
	// CheckoutTypeTemporary items are borrowed; their transaction stays
	// pending until checked back in.
	CheckoutTypeTemporary CheckoutType = "TEMPORARY"
)

// Valid reports whether the checkout type is one of the known values.
func (c CheckoutType) Valid() bool {
	return c == CheckoutTypePermanent || c == CheckoutTypeTemporary
}

// Cart is the live cart for one (user, location) pair. At most one exists
// per pair; it is created lazily on first add and deleted when a checkout
// commits or the user clears it.
type Cart struct {
	ID         string     `json:"cart_id"`
	UserID     string     `json:"user_id"`
	LocationID string     `json:"location_id"`
	Items      []CartItem `json:"items"`
}

// CartItem is a single line in a cart. At most one line exists per
// (cart, item, checkout_type) triple; repeated adds increment Quantity.
// Version is the optimistic-concurrency column guarding concurrent writes
// to the same line.
type CartItem struct {
	ID           string       `json:"cart_item_id"`
	CartID       string       `json:"cart_id"`
	ItemID       string       `json:"item_id"`
	Quantity     int          `json:"quantity"`
	CheckoutType CheckoutType `json:"checkout_type"`
	Version      int          `json:"-"`

	// Denormalized from the joined item row for display; not persisted on
	// the cart line itself.
	ItemName     string `json:"item_name,omitempty"`
	ItemNote     string `json:"item_note,omitempty"`
	ItemQuantity int    `json:"item_quantity,omitempty"`
}

// LinesForItem returns the cart lines referencing the given item.
func (c *Cart) LinesForItem(itemID string) []CartItem {
	if c == nil {
		return nil
	}
	var lines []CartItem
	for _, ci := range c.Items {
		if ci.ItemID == itemID {
			lines = append(lines, ci)
		}
	}
	return lines
}

// CombinedQuantity returns the total quantity requested for an item across
// all checkout types in the cart. A nil cart contributes zero.
func (c *Cart) CombinedQuantity(itemID string) int {
	total := 0
	for _, ci := range c.LinesForItem(itemID) {
		total += ci.Quantity
	}
	return total
}

// CartAction is a single-line mutation against a persisted cart.
type CartAction string

const (
	CartActionAdd    CartAction = "ADD"
	CartActionRemove CartAction = "REMOVE"
	CartActionClear  CartAction = "CLEAR"
)

// Valid reports whether the action is one of the known values.
func (a CartAction) Valid() bool {
	return a == CartActionAdd || a == CartActionRemove || a == CartActionClear
}
