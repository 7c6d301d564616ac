package shopify

import (
	"context"
	"fmt"
)

// PublishedTheme returns the id and name of the store's published theme via
// the REST Admin API. Returns zero values when no theme has the main role.
func (c *Client) PublishedTheme(ctx context.Context) (int64, string, error) {
	if c.rest == nil {
		return 0, "", fmt.Errorf("admin API credentials are not configured")
	}

	themes, err := c.rest.Theme.List(nil)
	if err != nil {
		return 0, "", fmt.Errorf("list themes: %w", err)
	}

	for _, theme := range themes {
		if theme.Role == "main" {
			return theme.ID, theme.Name, nil
		}
	}

	return 0, "", nil
}
