package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenLen   = 32
)

// CSRFProtection validates CSRF tokens on all state-changing requests
func CSRFProtection(next http.Handler) http.Handler {
	return CSRFProtectionExcept()(next)
}

// CSRFProtectionExcept is CSRFProtection that only issues the token for the
// listed paths. Those routes must check it themselves with RequireCSRF, after
// their session guard.
func CSRFProtectionExcept(paths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(paths))
	for _, p := range paths {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := getOrGenerateCSRFToken(w, r)
			r = r.WithContext(ctxkeys.WithCSRFToken(r.Context(), token))

			// Skip CSRF check for safe methods (GET, HEAD, OPTIONS)
			if r.Method == "GET" || r.Method == "HEAD" || r.Method == "OPTIONS" || skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			if !checkCSRF(w, r, token) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCSRF validates the token issued by CSRFProtectionExcept.
func RequireCSRF(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !checkCSRF(w, r, ctxkeys.CSRFToken(r.Context())) {
			return
		}
		next(w, r)
	}
}

// checkCSRF answers 403 and reports false when the submitted token does not
// match expected.
func checkCSRF(w http.ResponseWriter, r *http.Request, expected string) bool {
	// Header first (JSON clients such as /comprar), then the form field.
	// PostFormValue parses urlencoded and multipart bodies.
	submittedToken := r.Header.Get(csrfHeader)
	if submittedToken == "" {
		submittedToken = r.PostFormValue(csrfFormField)
	}

	// Validate token using constant-time comparison
	if !validCSRFToken(expected, submittedToken) {
		slog.Warn("csrf validation failed",
			"path", r.URL.Path,
			"method", r.Method,
			"ip", getClientIP(r),
		)
		http.Error(w, "Token CSRF inválido", http.StatusForbidden)
		return false
	}
	return true
}

// getOrGenerateCSRFToken retrieves existing token or generates new one
func getOrGenerateCSRFToken(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err == nil && cookie.Value != "" && len(cookie.Value) == base64.RawURLEncoding.EncodedLen(csrfTokenLen) {
		return cookie.Value
	}

	token := generateCSRFToken()

	cfg := ctxkeys.Config(r.Context())
	isProduction := cfg != nil && cfg.IsProduction()

	// Set cookie with SameSite=Lax for CSRF protection
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isProduction, // Secure flag based on APP_ENV (safer than r.TLS behind load balancers)
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7, // 7 days
	})

	return token
}

// generateCSRFToken creates cryptographically secure random token
func generateCSRFToken() string {
	bytes := make([]byte, csrfTokenLen)
	_, err := rand.Read(bytes)
	if err != nil {
		panic("failed to generate csrf token: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}

// validCSRFToken performs constant-time comparison of tokens
func validCSRFToken(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
