package metrics

import (
	"context"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/event"
)

// RegisterEventHandlers wires business counters to the event bus so metric
// bookkeeping stays out of the checkout service itself.
func RegisterEventHandlers(bus event.Bus) {
	bus.Subscribe(event.CheckoutCompleted, handleCheckoutCompleted)
	bus.Subscribe(event.CheckinCompleted, handleCheckinCompleted)
	bus.Subscribe(event.CartAdjusted, handleCartAdjusted)
}

func handleCheckoutCompleted(_ context.Context, e event.Event) error {
	payload, ok := e.Payload.(event.CheckoutCompletedPayloadV1)
	if !ok {
		return nil
	}
	if payload.PermanentUnits > 0 {
		CheckoutsCompleted.WithLabelValues(string(domain.CheckoutTypePermanent)).Inc()
		UnitsCheckedOut.WithLabelValues(string(domain.CheckoutTypePermanent)).Add(float64(payload.PermanentUnits))
	}
	if payload.TemporaryUnits > 0 {
		CheckoutsCompleted.WithLabelValues(string(domain.CheckoutTypeTemporary)).Inc()
		UnitsCheckedOut.WithLabelValues(string(domain.CheckoutTypeTemporary)).Add(float64(payload.TemporaryUnits))
	}
	return nil
}

func handleCheckinCompleted(_ context.Context, e event.Event) error {
	payload, ok := e.Payload.(event.CheckinCompletedPayloadV1)
	if !ok {
		return nil
	}
	CheckinsCompleted.Inc()
	UnitsRestored.Add(float64(payload.UnitsRestored))
	return nil
}

func handleCartAdjusted(_ context.Context, e event.Event) error {
	if _, ok := e.Payload.(event.CartAdjustedPayloadV1); ok {
		CartAdjustments.Inc()
	}
	return nil
}
