package domain

import (
	"fmt"
	"time"
)

// ActionType records what kind of event a transaction captures.
type ActionType string

const (
	ActionTypeCheckOut ActionType = "CHECK_OUT"
)

// TransactionStatus is the lifecycle state of a transaction.
// A TEMPORARY transaction starts PENDING and transitions exactly once to
// COMPLETED via check-in; a PERMANENT transaction is created COMPLETED and
// never transitions.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
)

// TransactionItem is one line of the denormalized snapshot embedded in a
// transaction at creation time. The snapshot is a deliberate point-in-time
// copy: it never reflects later renames, deletions or stock changes, and it
// is the source of truth for how much stock a check-in restores.
type TransactionItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Validate enforces the snapshot shape at the storage boundary. Check-in
// fails closed on a malformed snapshot before any stock is written.
func (ti TransactionItem) Validate() error {
	if ti.ID == "" {
		return fmt.Errorf("%w: snapshot item has empty id", ErrMalformedSnapshot)
	}
	if ti.Name == "" {
		return fmt.Errorf("%w: snapshot item %s has empty name", ErrMalformedSnapshot, ti.ID)
	}
	if ti.Quantity <= 0 {
		return fmt.Errorf("%w: snapshot item %s has non-positive quantity %d", ErrMalformedSnapshot, ti.ID, ti.Quantity)
	}
	return nil
}

// ValidateSnapshot validates every line of a transaction snapshot.
func ValidateSnapshot(items []TransactionItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: empty snapshot", ErrMalformedSnapshot)
	}
	for _, ti := range items {
		if err := ti.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Transaction is an immutable record of a checkout event. Append-only except
// for the single PENDING -> COMPLETED transition performed by check-in.
type Transaction struct {
	ID               string            `json:"transaction_id"`
	LinkID           string            `json:"link_id,omitempty"`
	LocationID       string            `json:"location_id"`
	UserID           string            `json:"user_id"`
	ActionType       ActionType        `json:"action_type"`
	CheckoutType     CheckoutType      `json:"checkout_type"`
	Status           TransactionStatus `json:"status"`
	ItemCount        int               `json:"item_count"`
	Items            []TransactionItem `json:"items"`
	Note             string            `json:"note,omitempty"`
	ByGuest          bool              `json:"by_guest"`
	GuestDisplayName string            `json:"guest_display_name,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	ResolvedAt       *time.Time        `json:"resolved_at,omitempty"`
}
