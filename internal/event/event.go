package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Common event types
const (
	CheckoutCompleted Type = "checkout.completed"
	CheckinCompleted  Type = "checkin.completed"
	CartAdjusted      Type = "cart.adjusted"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// CheckoutCompletedPayloadV1 is the typed payload for checkout completion events
type CheckoutCompletedPayloadV1 struct {
	UserID         string   `json:"user_id"`
	LocationID     string   `json:"location_id"`
	TransactionIDs []string `json:"transaction_ids"`
	LinkID         string   `json:"link_id,omitempty"`
	PermanentUnits int      `json:"permanent_units"`
	TemporaryUnits int      `json:"temporary_units"`
	Timestamp      int64    `json:"timestamp"`
}

// CheckinCompletedPayloadV1 is the typed payload for check-in completion events
type CheckinCompletedPayloadV1 struct {
	TransactionIDs []string `json:"transaction_ids"`
	UnitsRestored  int      `json:"units_restored"`
	Timestamp      int64    `json:"timestamp"`
}

// CartAdjustedPayloadV1 is the typed payload for reconciliation adjustments
type CartAdjustedPayloadV1 struct {
	UserID       string         `json:"user_id"`
	LocationID   string         `json:"location_id"`
	UnitsRemoved map[string]int `json:"units_removed"` // item name -> units
	Timestamp    int64          `json:"timestamp"`
}

// NewCheckoutCompletedEvent creates a new checkout completed event with type-safe payload
func NewCheckoutCompletedEvent(userID, locationID, linkID string, transactionIDs []string, permanentUnits, temporaryUnits int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CheckoutCompleted,
		Payload: CheckoutCompletedPayloadV1{
			UserID:         userID,
			LocationID:     locationID,
			TransactionIDs: transactionIDs,
			LinkID:         linkID,
			PermanentUnits: permanentUnits,
			TemporaryUnits: temporaryUnits,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewCheckinCompletedEvent creates a new check-in completed event
func NewCheckinCompletedEvent(transactionIDs []string, unitsRestored int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CheckinCompleted,
		Payload: CheckinCompletedPayloadV1{
			TransactionIDs: transactionIDs,
			UnitsRestored:  unitsRestored,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// NewCartAdjustedEvent creates a new cart adjusted event
func NewCartAdjustedEvent(userID, locationID string, unitsRemoved map[string]int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CartAdjusted,
		Payload: CartAdjustedPayloadV1{
			UserID:       userID,
			LocationID:   locationID,
			UnitsRemoved: unitsRemoved,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// publish failures must never fail the business operation that emitted them.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
