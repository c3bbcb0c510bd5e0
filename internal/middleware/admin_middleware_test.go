package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/session"
)

func setupAdminEcho(t *testing.T) (*echo.Echo, session.Store) {
	store := session.NewMemoryStore(session.TTL, session.SweepInterval)
	t.Cleanup(func() { store.Close() })

	e := echo.New()
	e.GET("/admin/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}, AdminGate(store, false))

	return e, store
}

func TestAdminGate_NoCookie(t *testing.T) {
	e, _ := setupAdminEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestAdminGate_UnknownSession(t *testing.T) {
	e, _ := setupAdminEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: "stale-id"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "session expired or invalid")

	// client is told to discard the cookie
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, AdminSessionCookie, cleared[0].Name)
	assert.Empty(t, cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestAdminGate_ValidSession(t *testing.T) {
	e, store := setupAdminEcho(t)

	id, err := store.Create(context.Background(), "owner@fusionforgepcs.in")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: AdminSessionCookie, Value: id})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestNewAdminCookie_Attributes(t *testing.T) {
	cookie := NewAdminCookie("abc", session.TTL, true)

	assert.Equal(t, AdminSessionCookie, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, int(session.TTL.Seconds()), cookie.MaxAge)
}
