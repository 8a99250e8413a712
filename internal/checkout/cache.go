package checkout

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/storeroomlabs/storeroom/internal/domain"
)

// locationCache is a small expiring LRU for location metadata. Locations
// change rarely compared to stock, so the reconciliation read avoids one
// lookup per request without risking stale quantities.
type locationCache struct {
	lru *expirable.LRU[string, *domain.InventoryLocation]
}

func newLocationCache(size int, ttl time.Duration) *locationCache {
	return &locationCache{
		lru: expirable.NewLRU[string, *domain.InventoryLocation](size, nil, ttl),
	}
}

func (c *locationCache) Get(locationID string) (*domain.InventoryLocation, bool) {
	return c.lru.Get(locationID)
}

func (c *locationCache) Put(loc *domain.InventoryLocation) {
	if loc == nil {
		return
	}
	c.lru.Add(loc.ID, loc)
}
