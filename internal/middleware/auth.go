package middleware

import (
	"net/http"

	"github.com/storefront-labs/draft-checkout/internal/config"
)

// AdminAuth middleware validates the admin token on dashboard routes.
// The token is passed in the "X-Admin-Token" header. When no tokens are
// configured the dashboard is closed off entirely.
func AdminAuth(cfg config.DashboardConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Admin-Token")

			if token == "" {
				http.Error(w, "Unauthorized: admin token required", http.StatusUnauthorized)
				return
			}

			valid := false
			for _, validToken := range cfg.Tokens {
				if token == validToken {
					valid = true
					break
				}
			}

			if !valid {
				http.Error(w, "Forbidden: invalid admin token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
