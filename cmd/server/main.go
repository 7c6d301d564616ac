package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront-labs/draft-checkout/internal/config"
	"github.com/storefront-labs/draft-checkout/internal/handlers"
	"github.com/storefront-labs/draft-checkout/internal/mailer"
	"github.com/storefront-labs/draft-checkout/internal/middleware"
	"github.com/storefront-labs/draft-checkout/internal/repository"
	"github.com/storefront-labs/draft-checkout/internal/service"
	"github.com/storefront-labs/draft-checkout/internal/shopify"
	"github.com/storefront-labs/draft-checkout/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting draft checkout server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"shop", cfg.Shopify.ShopDomain,
		"log_level", cfg.LogLevel,
	)

	if !cfg.Shopify.Configured() {
		log.Warn("shopify credentials are not configured; draft order creation will fail with a 500")
	}

	// Initialize settings persistence
	var store repository.SettingsStore
	if cfg.Database.DSN != "" {
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		gormStore := repository.NewGormSettingsStore(db)
		if err := gormStore.Migrate(); err != nil {
			log.Error("failed to migrate settings schema", "error", err)
			os.Exit(1)
		}
		store = gormStore
	} else {
		log.Warn("DATABASE_DSN not set; keeping settings in memory")
		store = repository.NewInMemorySettingsStore()
	}

	settingsCache := repository.NewSettingsCache(store, repository.DefaultSettingsTTL)

	// Initialize outbound clients
	shopifyClient := shopify.New(cfg.Shopify, log)
	mail := mailer.New(cfg.SMTP, log)
	if !mail.Configured() {
		log.Warn("SMTP credentials are not configured; summary emails will be skipped")
	}

	// Initialize services
	checkoutService := service.NewCheckoutService(cfg.Shopify, settingsCache, shopifyClient, mail, log)
	dashboardService := service.NewDashboardService(cfg.Shopify.ShopDomain, settingsCache, shopifyClient, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	draftOrderHandler := handlers.NewDraftOrderHandler(checkoutService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// Storefront endpoint; handles its own CORS (origin echo + 204 preflight)
	r.HandleFunc("/api/draft-orders", draftOrderHandler.ServeHTTP)

	// Admin API routes
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
		r.Use(middleware.AdminAuth(cfg.Dashboard))

		r.Get("/dashboard", dashboardHandler.GetDashboard)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
