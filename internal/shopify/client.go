package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	goshopify "github.com/bold-commerce/go-shopify/v3"

	"github.com/storefront-labs/draft-checkout/internal/config"
)

// Client talks to the Shopify Admin API for a single store: GraphQL for
// draft-order creation and counting, REST (via go-shopify) for theme listing.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	rest       *goshopify.Client
	logger     *slog.Logger
}

// New creates an Admin API client from the store credentials.
func New(cfg config.ShopifyConfig, logger *slog.Logger) *Client {
	c := &Client{
		endpoint: fmt.Sprintf("https://%s/admin/api/%s/graphql.json", cfg.ShopDomain, cfg.APIVersion),
		token:    cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	if cfg.Configured() {
		c.rest = goshopify.NewClient(goshopify.App{}, cfg.ShopDomain, cfg.AccessToken,
			goshopify.WithVersion(cfg.APIVersion))
	}

	return c
}

// graphqlResponse is the Admin API envelope. GraphQL may report errors with
// an HTTP 200, so the error list is checked independently of the status code.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// execute posts one GraphQL document and returns the raw data object.
// Transport failures, non-2xx statuses, and top-level GraphQL errors all
// collapse into a single error carrying the serialized detail.
func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"query":     query,
		"variables": variables,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create graphql request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute graphql request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read graphql response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("admin API returned non-OK status", "status", resp.StatusCode)
		return nil, fmt.Errorf("admin API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("parse graphql response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		detail, _ := json.Marshal(envelope.Errors)
		return nil, fmt.Errorf("graphql errors: %s", detail)
	}

	return envelope.Data, nil
}
