// Package flash keeps one-shot user messages in a signed, encrypted cookie
// between a redirect and the page that follows it.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const cookieName = "flash"

type Store struct {
	store *sessions.CookieStore
}

// NewStore derives the cookie signing and encryption keys from secret.
func NewStore(secret string, secure bool) *Store {
	store := sessions.NewCookieStore(deriveKey(secret, "flash-auth"), deriveKey(secret, "flash-enc"))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: store}
}

func deriveKey(secret, purpose string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(purpose))
	return mac.Sum(nil)
}

// Add queues msg for the next rendered page. Must be called before the
// response header is written.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, msg string) {
	// a cookie that no longer decodes yields a fresh session
	session, _ := s.store.Get(r, cookieName)
	session.AddFlash(msg)

	err := session.Save(r, w)
	if err != nil {
		slog.Error("failed to save flash", "error", err)
	}
}

// Pop returns and clears the queued messages.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []string {
	session, err := s.store.Get(r, cookieName)
	if err != nil && session.IsNew {
		return nil
	}

	values := session.Flashes()
	if len(values) == 0 {
		return nil
	}

	err = session.Save(r, w)
	if err != nil {
		slog.Error("failed to clear flashes", "error", err)
	}

	messages := make([]string, 0, len(values))
	for _, v := range values {
		if msg, ok := v.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
