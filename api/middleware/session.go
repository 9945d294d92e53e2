package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wadidirect/storefront-backend/internal/cart"
	"github.com/wadidirect/storefront-backend/pkg/config"
	"github.com/wadidirect/storefront-backend/pkg/logger"
)

type cartCtxKey struct{}

// CartSession resolves the caller's cart from a session cookie, issuing a new
// session id when none is presented. The cookie only names the in-memory
// cart; nothing is persisted server-side beyond the registry's TTL.
func CartSession(registry *cart.Registry, cfg config.CartConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cfg.SessionCookie); err == nil && cookie.Value != "" {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.SessionCookie,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(cfg.SessionTTL / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			ctx = context.WithValue(ctx, cartCtxKey{}, registry.Get(sessionID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CartFromContext returns the session's cart store, or nil outside the
// CartSession middleware.
func CartFromContext(ctx context.Context) *cart.Store {
	if store, ok := ctx.Value(cartCtxKey{}).(*cart.Store); ok {
		return store
	}
	return nil
}

// WithCart injects a cart store into the context; test helper for handlers
// that normally sit behind CartSession.
func WithCart(ctx context.Context, store *cart.Store) context.Context {
	return context.WithValue(ctx, cartCtxKey{}, store)
}
