package middleware

import (
	"net/http"

	"perfdash/internal/auth"
	"perfdash/internal/requestctx"
	"perfdash/internal/transport/http/api"
)

// Auth parses a bearer token when one is present. With required set,
// requests without a valid token are rejected with 401; otherwise they
// pass through anonymously.
func Auth(secret string, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(secret, r)
			if err != nil {
				if required {
					api.Fail(w, r, http.StatusUnauthorized, api.MsgUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithCaller(r.Context(), claims.Alias)))
		})
	}
}

func claimsFromRequest(secret string, r *http.Request) (*auth.Claims, error) {
	token, err := auth.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	return auth.ParseToken(secret, token)
}
