package middleware

import (
	"net/http"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/config"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/flash"
)

// Config middleware adds the sanitized app configuration to the request context.
// Secrets such as SECRET_KEY and DB_CONNECTION are excluded.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), cfg.Sanitized())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Flash makes the flash store available to page rendering.
func Flash(store *flash.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithFlashStore(r.Context(), store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
