package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var received []Event
	bus.Subscribe(CheckoutCompleted, func(ctx context.Context, e Event) error {
		received = append(received, e)
		return nil
	})

	e := NewCheckoutCompletedEvent("user-1", "loc-1", "link-1", []string{"tx-1", "tx-2"}, 2, 3)
	require.NoError(t, bus.Publish(context.Background(), e))

	require.Len(t, received, 1)
	assert.Equal(t, CheckoutCompleted, received[0].Type)

	payload, ok := received[0].Payload.(CheckoutCompletedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "link-1", payload.LinkID)
	assert.Equal(t, 2, payload.PermanentUnits)
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewCheckinCompletedEvent([]string{"tx-1"}, 5))
	assert.NoError(t, err)
}

func TestMemoryBusHandlerErrorsAggregated(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(CartAdjusted, func(ctx context.Context, e Event) error {
		return errors.New("handler failed")
	})
	bus.Subscribe(CartAdjusted, func(ctx context.Context, e Event) error {
		return nil
	})

	err := bus.Publish(context.Background(), NewCartAdjustedEvent("user-1", "loc-1", map[string]int{"hammer": 2}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
}
