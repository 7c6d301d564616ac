package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-labs/draft-checkout/internal/models"
	"github.com/storefront-labs/draft-checkout/internal/service"
	"github.com/storefront-labs/draft-checkout/pkg/logger"
)

type stubStoreReader struct {
	themeID   int64
	themeName string
	count     int
	err       error
}

func (s *stubStoreReader) PublishedTheme(ctx context.Context) (int64, string, error) {
	if s.err != nil {
		return 0, "", s.err
	}
	return s.themeID, s.themeName, nil
}

func (s *stubStoreReader) CountAppDraftOrders(ctx context.Context) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.count, nil
}

func newDashboardHandler(reader *stubStoreReader, settings *models.StoreSettings) *DashboardHandler {
	log := logger.New("error")
	svc := service.NewDashboardService(
		"test-store.myshopify.com",
		&stubSettings{settings: settings},
		reader,
		log,
	)
	return NewDashboardHandler(svc, log)
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	reader := &stubStoreReader{themeID: 42, themeName: "Dawn", count: 7}
	settings := &models.StoreSettings{Shop: "test-store.myshopify.com", SingleTag: "draft-checkout"}
	handler := newDashboardHandler(reader, settings)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	w := httptest.NewRecorder()

	handler.GetDashboard(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var data models.DashboardData
	if err := json.NewDecoder(w.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if data.ThemeID != 42 || data.ThemeName != "Dawn" {
		t.Errorf("theme = %d %q, want 42 Dawn", data.ThemeID, data.ThemeName)
	}
	if data.DraftOrderCount != 7 {
		t.Errorf("draftOrderCount = %d, want 7", data.DraftOrderCount)
	}
	if data.Settings.SingleTag != "draft-checkout" {
		t.Errorf("settings.singleTag = %q", data.Settings.SingleTag)
	}
}

func TestDashboardHandler_DegradesOnUpstreamFailure(t *testing.T) {
	reader := &stubStoreReader{err: errors.New("admin API returned status 401")}
	settings := &models.StoreSettings{Shop: "test-store.myshopify.com"}
	handler := newDashboardHandler(reader, settings)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	w := httptest.NewRecorder()

	handler.GetDashboard(w, req)

	// Upstream failures degrade to zero values, never an error status.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var data models.DashboardData
	if err := json.NewDecoder(w.Body).Decode(&data); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if data.ThemeID != 0 || data.DraftOrderCount != 0 {
		t.Errorf("expected zero values, got theme=%d count=%d", data.ThemeID, data.DraftOrderCount)
	}
}
