package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/flash"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/service"
)

// SessionMiddleware reads the session cookie and, when it is valid and its
// user still exists, puts the identity into the request context.
func SessionMiddleware(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.SessionCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByID(claims.UserID)
			if err != nil {
				if errors.Is(err, service.ErrNotFound) {
					authService.ClearJWTCookie(w)
				} else {
					// keep the cookie, the user may be back once storage is
					slog.Warn("session user lookup failed", "error", err, "user_id", claims.UserID)
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithSession(r.Context(), &ctxkeys.Session{
				UserID: user.ID,
				Name:   user.FullName(),
				Role:   user.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous requests to /login with message flashed.
func RequireLogin(flashes *flash.Store, message string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if ctxkeys.GetSession(r.Context()) == nil {
				flashes.Add(w, r, message)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}

// RequireInstructor is RequireLogin that also rejects non-instructors.
func RequireInstructor(flashes *flash.Store, message string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !ctxkeys.GetSession(r.Context()).IsInstructor() {
				flashes.Add(w, r, message)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}

// RequireLoginJSON answers anonymous API calls with 401.
func RequireLoginJSON(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.GetSession(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Debes iniciar sesión"})
			return
		}
		next(w, r)
	}
}
