package repository

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/storefront-labs/draft-checkout/internal/models"
)

// SettingsStore defines the interface for per-store settings access
type SettingsStore interface {
	GetOrCreate(ctx context.Context, shop string) (*models.StoreSettings, error)
}

// GormSettingsStore implements SettingsStore on PostgreSQL through gorm
type GormSettingsStore struct {
	db *gorm.DB
}

// NewGormSettingsStore creates a settings store backed by the given database
func NewGormSettingsStore(db *gorm.DB) *GormSettingsStore {
	return &GormSettingsStore{db: db}
}

// Migrate creates or updates the settings schema. Idempotent.
func (s *GormSettingsStore) Migrate() error {
	return s.db.AutoMigrate(&models.StoreSettings{})
}

// GetOrCreate returns the single settings row for the shop, inserting one
// with zero-value defaults on first access.
func (s *GormSettingsStore) GetOrCreate(ctx context.Context, shop string) (*models.StoreSettings, error) {
	var settings models.StoreSettings
	err := s.db.WithContext(ctx).
		Where(models.StoreSettings{Shop: shop}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("get or create settings for %s: %w", shop, err)
	}
	return &settings, nil
}

// InMemorySettingsStore implements SettingsStore without a database. Used
// when no DSN is configured and as a fixture in tests.
type InMemorySettingsStore struct {
	mu    sync.Mutex
	shops map[string]*models.StoreSettings
}

// NewInMemorySettingsStore creates an empty in-memory settings store
func NewInMemorySettingsStore() *InMemorySettingsStore {
	return &InMemorySettingsStore{
		shops: make(map[string]*models.StoreSettings),
	}
}

// GetOrCreate returns the settings for the shop, creating a zero-value row
// on first access.
func (s *InMemorySettingsStore) GetOrCreate(ctx context.Context, shop string) (*models.StoreSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings, exists := s.shops[shop]; exists {
		return settings, nil
	}

	settings := &models.StoreSettings{Shop: shop}
	s.shops[shop] = settings
	return settings, nil
}

// Put replaces the stored settings for a shop. Test and bootstrap helper.
func (s *InMemorySettingsStore) Put(settings *models.StoreSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shops[settings.Shop] = settings
}
