package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/middleware"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/services"
)

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")
	p.Use(middleware.IdentityMiddleware())

	p.GET("", func(c echo.Context) error {
		cl := middleware.GetIdentity(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		cart, err := cs.Get(c.Request().Context(), cl.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, cart)
	})

	p.POST("/items", func(c echo.Context) error {
		cl := middleware.GetIdentity(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		var body struct {
			ProductID string `json:"productId"`
			UnitPrice int64  `json:"unitPrice"`
			Quantity  int    `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		if err := cs.Add(c.Request().Context(), cl.UserID, body.ProductID, body.UnitPrice, body.Quantity); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	p.PATCH("/items/:productId", func(c echo.Context) error {
		cl := middleware.GetIdentity(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		if err := cs.UpdateQuantity(c.Request().Context(), cl.UserID, c.Param("productId"), body.Quantity); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	p.DELETE("/items/:productId", func(c echo.Context) error {
		cl := middleware.GetIdentity(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		if err := cs.Remove(c.Request().Context(), cl.UserID, c.Param("productId")); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	p.DELETE("", func(c echo.Context) error {
		cl := middleware.GetIdentity(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		if err := cs.Clear(c.Request().Context(), cl.UserID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
