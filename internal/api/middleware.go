package api

import "net/http"

// apiKeyHeader carries the ChargeScope API key on authenticated requests.
const apiKeyHeader = "X-API-Key"

// CORS allows browser dashboards on other origins to call the analysis
// endpoints. The allow-list mirrors what RegisterRoutes actually serves:
// GET reads, POST /api/v1/analyses, and the preflight OPTIONS.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+apiKeyHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// APIKeyAuth gates a handler behind a shared API key checked against the
// X-API-Key header. An empty key disables the check entirely, which is how
// local and single-tenant deployments run.
func APIKeyAuth(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(apiKeyHeader) != key {
				writeError(w, http.StatusUnauthorized, "missing or invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
