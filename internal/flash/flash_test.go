package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddThenPop(t *testing.T) {
	store := NewStore("secret", false)

	rec := httptest.NewRecorder()
	store.Add(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "Contraseña incorrecta.")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	assert.Equal(t, []string{"Contraseña incorrecta."}, store.Pop(rec, req))

	// the popped cookie no longer carries the message
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cleared[0])
	assert.Empty(t, store.Pop(httptest.NewRecorder(), req))
}

func TestStore_RejectsForeignCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	NewStore("other", false).Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), "hola")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	assert.Empty(t, NewStore("secret", false).Pop(httptest.NewRecorder(), req))
}

func TestStore_PopWithoutCookie(t *testing.T) {
	store := NewStore("secret", false)
	rec := httptest.NewRecorder()
	assert.Empty(t, store.Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}
