package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/breathehq/breathe/pkg/jwtx"
	"github.com/breathehq/breathe/pkg/slogx"
)

// AuthnMiddleware verifies the bearer token on a request and attaches the
// decoded identity to the context. The "Bearer " prefix is mandatory; a bare
// token or any other scheme is rejected rather than passed to the verifier.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeUnauthorized(w)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
			if raw == "" {
				writeUnauthorized(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeUnauthorized(w)
				return
			}

			if err := claims.ValidateExpiry(); err != nil {
				writeUnauthorized(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.UserID)
	ctx = context.WithValue(ctx, CtxKeyCustomerID, c.CustomerID)
	ctx = context.WithValue(ctx, CtxKeyEmail, c.Email)
	return ctx
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]any{
		"success": false,
		"message": "Unauthorized",
	})
}
