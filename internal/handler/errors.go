package handler

import (
	"errors"
	"net/http"

	"github.com/storeroomlabs/storeroom/internal/domain"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
)

// Machine-readable reason codes clients branch on
const (
	ReasonNoStock     = "NO_STOCK"
	ReasonServerError = "SERVER_ERROR"
)

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgLocationNotFoundError    = "Location not found"
	ErrMsgItemNotFoundError        = "Item not found"
	ErrMsgCartNotFoundError        = "Cart not found"
	ErrMsgCartItemNotFoundError    = "That item is not in your cart"
	ErrMsgUserNotFoundError        = "User not found"
	ErrMsgTransactionNotFoundError = "Transaction not found"

	ErrMsgStockExhaustedError = "Not enough stock to complete the checkout"
	ErrMsgNotPendingError     = "Transaction has already been checked in"
	ErrMsgWriteConflictError  = "Someone else updated the cart at the same time. Please try again."
	ErrMsgSnapshotError       = "Transaction record is damaged and cannot be checked in"
)

// mapServiceErrorToUserMessage maps domain errors to an HTTP status code and
// a sanitized user message. Raw internals never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrLocationNotFound):
		return http.StatusNotFound, ErrMsgLocationNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrCartNotFound):
		return http.StatusNotFound, ErrMsgCartNotFoundError
	case errors.Is(err, domain.ErrCartItemNotFound):
		return http.StatusNotFound, ErrMsgCartItemNotFoundError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound, ErrMsgTransactionNotFoundError
	case errors.Is(err, domain.ErrStockExhausted):
		return http.StatusConflict, ErrMsgStockExhaustedError
	case errors.Is(err, domain.ErrNotPending):
		return http.StatusConflict, ErrMsgNotPendingError
	case errors.Is(err, domain.ErrWriteConflict):
		return http.StatusConflict, ErrMsgWriteConflictError
	case errors.Is(err, domain.ErrMalformedSnapshot):
		return http.StatusInternalServerError, ErrMsgSnapshotError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
