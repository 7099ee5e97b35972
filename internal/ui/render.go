package ui

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/ctxkeys"
)

func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	RenderStatus(w, r, http.StatusOK, c)
}

// RenderStatus writes c with the given status. Pending flash messages are
// popped first so the page shows them and the cookie is cleared in the same
// response.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	ctx := r.Context()
	if store := ctxkeys.FlashStore(ctx); store != nil {
		ctx = ctxkeys.WithFlashes(ctx, store.Pop(w, r))
	}

	var buf bytes.Buffer
	err := c.Render(ctx, &buf)
	if err != nil {
		slog.Error("render failed", "error", err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	if err != nil {
		slog.Error("render write failed", "error", err)
	}
}
