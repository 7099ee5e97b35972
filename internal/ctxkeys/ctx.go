package ctxkeys

import (
	"context"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/config"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/flash"
	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	SessionKey    contextKey = "session"
	URLPathKey    contextKey = "url_path"
	ConfigKey     contextKey = "config"
	CSRFTokenKey  contextKey = "csrf_token"
	FlashStoreKey contextKey = "flash_store"
	FlashesKey    contextKey = "flashes"
)

// Session is the authenticated identity of the request.
type Session struct {
	UserID string
	Name   string
	Role   string
}

func (s *Session) IsInstructor() bool {
	return s != nil && s.Role == model.RoleInstructor
}

// GetSession returns nil for anonymous requests.
func GetSession(ctx context.Context) *Session {
	session, _ := ctx.Value(SessionKey).(*Session)
	return session
}

func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}

func FlashStore(ctx context.Context) *flash.Store {
	store, _ := ctx.Value(FlashStoreKey).(*flash.Store)
	return store
}

func WithFlashStore(ctx context.Context, store *flash.Store) context.Context {
	return context.WithValue(ctx, FlashStoreKey, store)
}

// Flashes are the messages popped for the page being rendered.
func Flashes(ctx context.Context) []string {
	flashes, _ := ctx.Value(FlashesKey).([]string)
	return flashes
}

func WithFlashes(ctx context.Context, flashes []string) context.Context {
	return context.WithValue(ctx, FlashesKey, flashes)
}
