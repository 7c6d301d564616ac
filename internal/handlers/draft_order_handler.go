package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/storefront-labs/draft-checkout/internal/models"
	"github.com/storefront-labs/draft-checkout/internal/service"
)

// DraftOrderHandler handles the storefront draft-order endpoint. It manages
// its own CORS headers because the storefront calls cross-origin and the
// browser must be able to read error responses too.
type DraftOrderHandler struct {
	checkout *service.CheckoutService
	log      *slog.Logger
}

// NewDraftOrderHandler creates a new draft order handler
func NewDraftOrderHandler(checkout *service.CheckoutService, log *slog.Logger) *DraftOrderHandler {
	return &DraftOrderHandler{
		checkout: checkout,
		log:      log,
	}
}

// ServeHTTP handles POST/OPTIONS /api/draft-orders; other methods get a 405.
func (h *DraftOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w, r)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
	case http.MethodPost:
		h.create(w, r)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", h.log)
	}
}

func (h *DraftOrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req models.DraftOrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode draft order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	result, err := h.checkout.CreateDraftOrders(r.Context(), req)
	if err != nil {
		h.log.Error("failed to create draft orders", "error", err)

		switch {
		case errors.Is(err, service.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "Cart is empty", h.log)
		case errors.Is(err, service.ErrNotConfigured):
			WriteError(w, http.StatusInternalServerError, "Store credentials are not configured", h.log)
		default:
			// Upstream detail is passed through for diagnosability.
			WriteError(w, http.StatusInternalServerError, err.Error(), h.log)
		}
		return
	}

	resp := models.DraftOrderResponse{
		Success:    true,
		Drafts:     result.Drafts,
		EmailSent:  result.Email.Sent,
		EmailError: result.Email.Error,
	}

	WriteJSON(w, http.StatusOK, resp, h.log)
	h.log.Info("draft orders created", "count", len(result.Drafts), "email_sent", result.Email.Sent)
}

// setCORSHeaders echoes the request origin so any storefront origin can call
// the endpoint and read the response, including error responses.
func setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}
