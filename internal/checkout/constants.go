package checkout

import "time"

// Location cache configuration. Only location metadata is cached; item
// quantities are always read live.
const (
	LocationCacheSize = 256
	LocationCacheTTL  = 30 * time.Second
)

// Log message constants
const (
	LogMsgReconcileCalled     = "ReconcileInventory called"
	LogMsgCheckoutCalled      = "Checkout called"
	LogMsgCheckoutCommitted   = "Checkout committed"
	LogMsgCheckoutOutOfStock  = "Checkout aborted, insufficient stock"
	LogMsgCheckInCalled       = "CheckIn called"
	LogMsgCheckInCompleted    = "CheckIn completed"
	LogMsgMutateCartCalled    = "MutateCart called"
	LogMsgCartCleared         = "Cart cleared"
	LogMsgCartLineAdjusted    = "Cart lines adjusted during reconciliation"
	LogMsgCartCreateRaceLost  = "Cart creation raced, re-fetching existing cart"
)

// Error message formats
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgEmptyCheckout           = "checkout requires at least one item"
	ErrMsgMissingCartID           = "checkout requires the cart id"
	ErrMsgEmptyCheckIn            = "check-in requires at least one transaction id"
)

// Human-readable result messages
const (
	msgCheckoutSuccess = "Checkout complete: %d transactions created"
)
