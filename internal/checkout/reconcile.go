package checkout

import (
	"context"

	"github.com/storeroomlabs/storeroom/internal/domain"
	"github.com/storeroomlabs/storeroom/internal/event"
	"github.com/storeroomlabs/storeroom/internal/logger"
)

// Reconcile computes a consistent view of stock and cart without touching
// the store. When another user depleted stock after this cart was built, the
// combined requested quantity for an item can exceed what is left; the
// reconciler removes exactly the shortfall from the cart's lines,
// decrementing the TEMPORARY line before the PERMANENT one (borrowed
// commitments are cheaper to bump than permanent take requests). A line
// reaching zero drops out of the working set. Nothing is persisted; a later
// checkout commit consumes only what survives here.
//
// Returned values: the per-item adjusted view, a reconciled copy of the cart
// (nil when the input cart is nil), and a diff of item name to units removed.
func Reconcile(items []domain.Item, cart *domain.Cart) ([]domain.AdjustedItem, *domain.Cart, map[string]int) {
	diff := make(map[string]int)

	var reconciled *domain.Cart
	if cart != nil {
		c := *cart
		c.Items = make([]domain.CartItem, len(cart.Items))
		copy(c.Items, cart.Items)
		reconciled = &c
	}

	adjusted := make([]domain.AdjustedItem, 0, len(items))
	for _, item := range items {
		ai := reconcileItem(item, reconciled)
		if ai.Adjusted {
			diff[item.Name] += diffForItem(item, cart, reconciled)
		}
		adjusted = append(adjusted, ai)
	}

	if reconciled != nil {
		reconciled.Items = compactLines(reconciled.Items)
	}

	return adjusted, reconciled, diff
}

// reconcileItem adjusts the cart lines for one item in place and returns the
// item's adjusted view.
func reconcileItem(item domain.Item, cart *domain.Cart) domain.AdjustedItem {
	ai := domain.AdjustedItem{Item: item}

	if cart == nil {
		ai.Available = item.Quantity
		return ai
	}

	combined := cart.CombinedQuantity(item.ID)
	if combined == 0 {
		ai.Available = item.Quantity
		return ai
	}

	shortfall := combined - item.Quantity
	if shortfall > 0 {
		// Remove exactly the shortfall, one unit at a time, TEMPORARY first.
		for _, ct := range []domain.CheckoutType{domain.CheckoutTypeTemporary, domain.CheckoutTypePermanent} {
			for shortfall > 0 {
				idx := lineIndex(cart.Items, item.ID, ct)
				if idx < 0 || cart.Items[idx].Quantity == 0 {
					break
				}
				cart.Items[idx].Quantity--
				shortfall--
			}
		}
		ai.Adjusted = true
		combined = cart.CombinedQuantity(item.ID)
	}

	for _, line := range cart.LinesForItem(item.ID) {
		if line.Quantity > 0 {
			ai.CheckedOut = append(ai.CheckedOut, domain.CartLine{
				CheckoutType: line.CheckoutType,
				Quantity:     line.Quantity,
			})
		}
	}

	ai.Available = item.Quantity - combined
	if ai.Available < 0 {
		// Unreachable given the shortfall removal above; guard the invariant
		// that the displayed quantity is never negative.
		ai.Available = 0
	}

	return ai
}

// diffForItem reports how many units the reconciler removed for one item.
func diffForItem(item domain.Item, before, after *domain.Cart) int {
	return before.CombinedQuantity(item.ID) - after.CombinedQuantity(item.ID)
}

// lineIndex finds the cart line for (item, checkoutType), -1 when absent.
func lineIndex(lines []domain.CartItem, itemID string, ct domain.CheckoutType) int {
	for i := range lines {
		if lines[i].ItemID == itemID && lines[i].CheckoutType == ct {
			return i
		}
	}
	return -1
}

// compactLines drops lines whose quantity reached zero.
func compactLines(lines []domain.CartItem) []domain.CartItem {
	kept := lines[:0]
	for _, line := range lines {
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// ReconcileInventory loads current stock and the user's cart for a location
// and returns the reconciled view. This read never mutates persisted rows.
func (s *service) ReconcileInventory(ctx context.Context, userID, locationID string) (*ReconcileResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgReconcileCalled, "user_id", userID, "location_id", locationID)

	location, ok := s.locations.Get(locationID)
	if !ok {
		var err error
		location, err = s.inventoryRepo.GetLocation(ctx, locationID)
		if err != nil {
			return nil, err
		}
		s.locations.Put(location)
	}

	tags, err := s.inventoryRepo.GetTagsByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	items, err := s.inventoryRepo.GetItemsByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetCartWithItems(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}

	adjustedItems, reconciledCart, diff := Reconcile(items, cart)

	if len(diff) > 0 {
		log.Info(LogMsgCartLineAdjusted, "user_id", userID, "location_id", locationID, "adjusted_items", len(diff))
		s.publish(ctx, event.NewCartAdjustedEvent(userID, locationID, diff))
	}

	return &ReconcileResult{
		Location: location,
		Tags:     tags,
		Items:    adjustedItems,
		Cart:     reconciledCart,
		Diff:     diff,
	}, nil
}
