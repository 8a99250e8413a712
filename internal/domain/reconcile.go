package domain

// CartLine is the per-checkout-type breakdown of what a user's cart holds
// for one item, as seen by the reconciler.
type CartLine struct {
	CheckoutType CheckoutType `json:"checkout_type"`
	Quantity     int          `json:"quantity"`
}

// AdjustedItem is the reconciler's per-item output: the item with its
// displayable quantity after subtracting the user's combined cart quantity,
// the checked-out breakdown per checkout type, and whether the reconciler
// had to shrink the cart because stock dropped below what the cart already
// held. This working set is recomputed on every read and never persisted.
type AdjustedItem struct {
	Item       Item       `json:"item"`
	Available  int        `json:"available"`
	CheckedOut []CartLine `json:"checked_out,omitempty"`
	Adjusted   bool       `json:"adjusted"`
}
