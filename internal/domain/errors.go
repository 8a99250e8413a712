package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgLocationNotFound    = "location not found"
	ErrMsgItemNotFound        = "item not found"
	ErrMsgCartNotFound        = "cart not found"
	ErrMsgCartItemNotFound    = "cart item not found"
	ErrMsgUserNotFound        = "user not found"
	ErrMsgTransactionNotFound = "transaction not found"

	// Cart errors
	ErrMsgCartExists = "cart already exists"

	// Stock errors
	ErrMsgStockExhausted   = "insufficient stock"
	ErrMsgNegativeQuantity = "negative item quantity"

	// Concurrency errors
	ErrMsgWriteConflict = "write conflict"
	ErrMsgTxClosed      = "tx is closed"

	// Snapshot errors
	ErrMsgMalformedSnapshot = "malformed transaction snapshot"

	// Transaction state errors
	ErrMsgNotPending = "transaction is not pending"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Lookup errors
	ErrLocationNotFound    = errors.New(ErrMsgLocationNotFound)
	ErrItemNotFound        = errors.New(ErrMsgItemNotFound)
	ErrCartNotFound        = errors.New(ErrMsgCartNotFound)
	ErrCartItemNotFound    = errors.New(ErrMsgCartItemNotFound)
	ErrUserNotFound        = errors.New(ErrMsgUserNotFound)
	ErrTransactionNotFound = errors.New(ErrMsgTransactionNotFound)

	// Cart errors
	ErrCartExists = errors.New(ErrMsgCartExists)

	// Stock errors
	ErrStockExhausted   = errors.New(ErrMsgStockExhausted)
	ErrNegativeQuantity = errors.New(ErrMsgNegativeQuantity)

	// Concurrency errors
	ErrWriteConflict = errors.New(ErrMsgWriteConflict)

	// Snapshot errors
	ErrMalformedSnapshot = errors.New(ErrMsgMalformedSnapshot)

	// Transaction state errors
	ErrNotPending = errors.New(ErrMsgNotPending)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
