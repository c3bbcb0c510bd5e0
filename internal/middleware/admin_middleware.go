package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/session"
)

// AdminSessionCookie holds the opaque admin session id.
const AdminSessionCookie = "admin_session"

// AdminGate admits requests carrying a live admin session. Every
// admitted request slides the session expiry forward; sessions under
// active use never expire. An invalid or expired session gets a 401
// with a machine-readable reason and the cookie cleared.
func AdminGate(store session.Store, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AdminSessionCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			ctx := c.Request().Context()

			ok, err := store.Validate(ctx, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
			}
			if !ok {
				c.SetCookie(ClearAdminCookie(secure))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired or invalid"})
			}

			// sliding expiration; eviction between Validate and Refresh
			// surfaces on the next request, not this one
			_ = store.Refresh(ctx, cookie.Value)

			c.Response().Header().Set("X-Frame-Options", "DENY")
			c.Response().Header().Set("X-Content-Type-Options", "nosniff")

			return next(c)
		}
	}
}

// NewAdminCookie builds the session cookie handed to the client. The
// value is opaque; all session state lives server-side.
func NewAdminCookie(value string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearAdminCookie instructs the client to discard its session cookie.
func ClearAdminCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     AdminSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
