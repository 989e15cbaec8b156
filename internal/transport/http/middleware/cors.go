package middleware

import (
	"net/http"

	"perfdash/internal/transport/http/api"
)

// CORS stamps the shared header set on every response and answers
// preflight requests before they reach the router.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.SetCORSHeaders(w.Header())
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
