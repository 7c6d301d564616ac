package repository

import (
	"context"
	"sync"
	"time"

	"github.com/storefront-labs/draft-checkout/internal/models"
)

// DefaultSettingsTTL bounds how stale a cached settings snapshot may be.
const DefaultSettingsTTL = 5 * time.Minute

// SettingsCache is a single-slot, time-boxed cache in front of a
// SettingsStore. It avoids a database round trip on every request at the
// cost of serving a snapshot up to TTL old.
//
// The store fetch happens outside the slot lock, so two requests that both
// observe a cold or expired slot may both query the store. That duplicate
// fetch is an accepted tradeoff: the window is small and the consequence is
// reading slightly stale settings.
type SettingsCache struct {
	store SettingsStore
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	shop      string
	cached    *models.StoreSettings
	fetchedAt time.Time
}

// NewSettingsCache creates a cache with the given TTL in front of store
func NewSettingsCache(store SettingsStore, ttl time.Duration) *SettingsCache {
	return &SettingsCache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached settings for the shop when the entry is younger
// than the TTL, otherwise fetches (or lazily creates) them from the store
// and refreshes the slot.
func (c *SettingsCache) Get(ctx context.Context, shop string) (*models.StoreSettings, error) {
	c.mu.Lock()
	if c.cached != nil && c.shop == shop && c.now().Sub(c.fetchedAt) < c.ttl {
		settings := c.cached
		c.mu.Unlock()
		return settings, nil
	}
	c.mu.Unlock()

	settings, err := c.store.GetOrCreate(ctx, shop)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.shop = shop
	c.cached = settings
	c.fetchedAt = c.now()
	c.mu.Unlock()

	return settings, nil
}
