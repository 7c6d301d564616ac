package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-labs/draft-checkout/internal/models"
)

// countingStore counts round trips so tests can assert the cache actually
// short-circuits them.
type countingStore struct {
	calls    int
	settings *models.StoreSettings
}

func (s *countingStore) GetOrCreate(ctx context.Context, shop string) (*models.StoreSettings, error) {
	s.calls++
	return s.settings, nil
}

func TestSettingsCache_HitWithinTTL(t *testing.T) {
	store := &countingStore{settings: &models.StoreSettings{Shop: "test-store.myshopify.com"}}
	cache := NewSettingsCache(store, DefaultSettingsTTL)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	first, err := cache.Get(context.Background(), "test-store.myshopify.com")
	require.NoError(t, err)

	current = current.Add(4 * time.Minute)

	second, err := cache.Get(context.Background(), "test-store.myshopify.com")
	require.NoError(t, err)

	// Identical snapshot, one store round trip.
	assert.Same(t, first, second)
	assert.Equal(t, 1, store.calls)
}

func TestSettingsCache_RefreshAfterTTL(t *testing.T) {
	store := &countingStore{settings: &models.StoreSettings{Shop: "test-store.myshopify.com"}}
	cache := NewSettingsCache(store, DefaultSettingsTTL)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	_, err := cache.Get(context.Background(), "test-store.myshopify.com")
	require.NoError(t, err)

	current = current.Add(DefaultSettingsTTL + time.Second)

	_, err = cache.Get(context.Background(), "test-store.myshopify.com")
	require.NoError(t, err)

	assert.Equal(t, 2, store.calls)
}

func TestSettingsCache_DifferentShopBypassesSlot(t *testing.T) {
	store := &countingStore{settings: &models.StoreSettings{Shop: "a.myshopify.com"}}
	cache := NewSettingsCache(store, DefaultSettingsTTL)

	_, err := cache.Get(context.Background(), "a.myshopify.com")
	require.NoError(t, err)

	_, err = cache.Get(context.Background(), "b.myshopify.com")
	require.NoError(t, err)

	assert.Equal(t, 2, store.calls)
}

func TestInMemorySettingsStore_GetOrCreate(t *testing.T) {
	store := NewInMemorySettingsStore()

	first, err := store.GetOrCreate(context.Background(), "test-store.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "test-store.myshopify.com", first.Shop)
	assert.False(t, first.DoubleOrdersEnabled)

	second, err := store.GetOrCreate(context.Background(), "test-store.myshopify.com")
	require.NoError(t, err)
	assert.Same(t, first, second)
}
