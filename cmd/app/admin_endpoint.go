package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/middleware"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/services"
)

func registerAdminRoutes(g *echo.Group, as *services.AdminService, sessionTTL time.Duration, secure bool) {
	a := g.Group("/admin")

	// ============================
	// ELEVATION
	// (requires the primary-identity cookie)
	// ============================
	a.POST("/login", func(c echo.Context) error {
		cl := middleware.GetIdentity(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		var body struct {
			Email string `json:"email"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		// the elevation request must be for the identity making it
		if !strings.EqualFold(strings.TrimSpace(body.Email), cl.Email) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "email does not match authenticated identity"})
		}

		id, err := as.Login(c.Request().Context(), body.Email)
		if errors.Is(err, services.ErrNotAdmin) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
		}

		c.SetCookie(middleware.NewAdminCookie(id, sessionTTL, secure))
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}, middleware.IdentityMiddleware())

	// ============================
	// LOGOUT
	// ============================
	a.POST("/logout", func(c echo.Context) error {
		if cookie, err := c.Cookie(middleware.AdminSessionCookie); err == nil && cookie.Value != "" {
			if err := as.Logout(c.Request().Context(), cookie.Value); err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "session store unavailable"})
			}
		}
		c.SetCookie(middleware.ClearAdminCookie(secure))
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
