package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dcode-github/property_chatbot/backend/controllers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuth struct {
	principal string
	err       error
}

func (a staticAuth) Authenticate(*http.Request) (string, error) { return a.principal, a.err }

func protected(t *testing.T, auth Authenticator) (http.Handler, *bool) {
	t.Helper()
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "admin", r.Context().Value(controllers.AdminKey))
		w.WriteHeader(http.StatusNoContent)
	})
	return RequireAuth(auth, "/admin/login")(next), &called
}

func TestRequireAuthRedirects(t *testing.T) {
	h, called := protected(t, staticAuth{err: errors.New("no session")})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/properties/add", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	assert.False(t, *called)
}

func TestRequireAuthPassesPrincipal(t *testing.T) {
	h, called := protected(t, staticAuth{principal: "admin"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/properties", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, *called)
}

func TestSessionAuth(t *testing.T) {
	s := NewSessionAuth("secret", time.Hour, false)

	_, err := s.Authenticate(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, s.Start(rec, "admin"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	principal, err := s.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal)

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookies[0].Value + "x"})
	_, err = s.Authenticate(forged)
	assert.Error(t, err)

	rec = httptest.NewRecorder()
	s.End(rec)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, "", cleared[0].Value)
	assert.Less(t, cleared[0].MaxAge, 0)
}
