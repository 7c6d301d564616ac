package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/storefront-labs/draft-checkout/internal/config"
	"github.com/storefront-labs/draft-checkout/internal/mailer"
	"github.com/storefront-labs/draft-checkout/internal/models"
	"github.com/storefront-labs/draft-checkout/internal/shopify"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNotConfigured = errors.New("store credentials are not configured")
)

// SettingsGetter provides the current store settings, normally through the
// TTL cache.
type SettingsGetter interface {
	Get(ctx context.Context, shop string) (*models.StoreSettings, error)
}

// DraftOrderCreator creates draft orders against the Admin API
type DraftOrderCreator interface {
	CreateDraftOrders(ctx context.Context, inputs []shopify.DraftOrderInput) ([]models.CreatedDraftOrder, error)
}

// Notifier sends the customer summary email
type Notifier interface {
	Notify(ctx context.Context, customer models.Customer, orders []models.CreatedDraftOrder, shop string) mailer.Outcome
}

// CheckoutService turns a storefront submission into one or two draft orders
// and emails the customer a summary.
type CheckoutService struct {
	cfg      config.ShopifyConfig
	settings SettingsGetter
	drafts   DraftOrderCreator
	notifier Notifier
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(cfg config.ShopifyConfig, settings SettingsGetter, drafts DraftOrderCreator, notifier Notifier, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		cfg:      cfg,
		settings: settings,
		drafts:   drafts,
		notifier: notifier,
		logger:   logger,
	}
}

// CheckoutResult carries the created drafts plus the email outcome. The
// email outcome is soft: order creation has already committed by the time
// the notification runs, and a send failure must never roll it back.
type CheckoutResult struct {
	Drafts []models.CreatedDraftOrder
	Email  mailer.Outcome
}

// CreateDraftOrders validates the submission, composes the draft-order
// inputs per the current settings, creates them (in parallel when split into
// a payment plan), and then notifies the customer.
//
// There is no deduplication across submissions: two near-simultaneous
// requests from the same customer produce two independent sets of drafts.
func (s *CheckoutService) CreateDraftOrders(ctx context.Context, req models.DraftOrderRequest) (*CheckoutResult, error) {
	if len(req.Cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if !s.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	settings, err := s.settings.Get(ctx, s.cfg.ShopDomain)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	inputs := Compose(req, settings)

	created, err := s.drafts.CreateDraftOrders(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("create draft orders: %w", err)
	}

	outcome := s.notifier.Notify(ctx, req.Customer, created, s.cfg.ShopDomain)
	if outcome.Error != "" {
		s.logger.Warn("summary email failed", "error", outcome.Error)
	}

	s.logger.Info("draft orders created",
		"count", len(created),
		"email_sent", outcome.Sent,
	)

	return &CheckoutResult{Drafts: created, Email: outcome}, nil
}
