package middleware

import (
	"net/http"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
)

// WithURLPath adds the current URL's path to the context, used to mark the
// active navigation link.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxWithPath := ctxkeys.WithURLPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctxWithPath))
	})
}
