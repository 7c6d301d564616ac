package service

import (
	"context"
	"log/slog"

	"github.com/storefront-labs/draft-checkout/internal/models"
)

// StoreReader exposes the Admin API reads the dashboard needs
type StoreReader interface {
	PublishedTheme(ctx context.Context) (int64, string, error)
	CountAppDraftOrders(ctx context.Context) (int, error)
}

// DashboardService aggregates setup status for the admin UI
type DashboardService struct {
	shop     string
	settings SettingsGetter
	store    StoreReader
	logger   *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(shop string, settings SettingsGetter, store StoreReader, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		shop:     shop,
		settings: settings,
		store:    store,
		logger:   logger,
	}
}

// Dashboard returns the published theme, the count of draft orders this
// service created, and the current settings. Every upstream failure
// degrades its field to a zero value; the dashboard never errors.
func (s *DashboardService) Dashboard(ctx context.Context) models.DashboardData {
	var data models.DashboardData

	if id, name, err := s.store.PublishedTheme(ctx); err != nil {
		s.logger.Warn("failed to read published theme", "error", err)
	} else {
		data.ThemeID = id
		data.ThemeName = name
	}

	if count, err := s.store.CountAppDraftOrders(ctx); err != nil {
		s.logger.Warn("failed to count app draft orders", "error", err)
	} else {
		data.DraftOrderCount = count
	}

	if settings, err := s.settings.Get(ctx, s.shop); err != nil {
		s.logger.Warn("failed to load settings", "error", err)
	} else {
		data.Settings = *settings
	}

	return data
}
