package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
)

// nonceKey is the context key for the generated nonce. It is separate from
// templ's internal key so SecurityHeaders can read it back.
type nonceKey struct{}

// NonceMiddleware generates a random nonce per request and stores it both
// for templ (templ.GetNonce) and for SecurityHeaders, which puts it in the
// Content-Security-Policy so only inline styles carrying it are applied.
func NonceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce, err := generateNonce()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := templ.WithNonce(r.Context(), nonce)
		ctx = context.WithValue(ctx, nonceKey{}, nonce)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetNonce retrieves the nonce from context for use in middleware
// (templates should use templ.GetNonce() instead)
func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}

// SecurityHeaders sets CSP and related headers. Must run after NonceMiddleware
// and Config.
// Referrer-Policy keeps reset tokens in /restablecer/ URLs from leaking to
// other origins.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce := GetNonce(r.Context())

		imgSrc := "'self' https: data:"
		// uploaded covers may be served from a plain http S3 endpoint in development
		if cfg := ctxkeys.Config(r.Context()); cfg != nil && cfg.S3Endpoint != "" {
			imgSrc += " " + cfg.S3Endpoint
		}

		csp := "default-src 'self'; img-src " + imgSrc + "; frame-ancestors 'none'; form-action 'self'; base-uri 'self'"
		if nonce != "" {
			csp += fmt.Sprintf("; style-src 'self' 'nonce-%s'; script-src 'self' 'nonce-%s'", nonce, nonce)
		}

		h := w.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")

		next.ServeHTTP(w, r)
	})
}

// generateNonce returns 16 random bytes, base64 encoded.
func generateNonce() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
