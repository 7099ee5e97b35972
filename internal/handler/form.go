package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/jlqexelente100-pixel/Innova-y-Emprende/internal/validation"
)

const (
	msgUnavailable = "No se pudo conectar a la base de datos. Intenta de nuevo más tarde."
	maxUploadBytes = 10 << 20
)

// forms carry csrf_token and submit buttons the structs do not declare
var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// decodeForm parses an urlencoded or multipart body into dst using its
// schema tags.
func decodeForm(r *http.Request, dst any) error {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err = r.ParseMultipartForm(maxUploadBytes)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return err
	}
	return formDecoder.Decode(dst, r.PostForm)
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode json response", "error", err)
	}
}

func jsonError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// validationMessage returns the user facing text of a validation failure.
func validationMessage(err error) (string, bool) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Message, true
	}
	return "", false
}

func addLessonPath(courseID string) string {
	return "/profesor/curso/" + url.PathEscape(courseID) + "/" + url.PathEscape("añadir_leccion")
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
