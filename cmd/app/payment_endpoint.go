package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/middleware"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/services"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payment")
	p.Use(middleware.IdentityMiddleware())

	p.POST("/create-order", func(c echo.Context) error {
		cl := middleware.GetIdentity(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		// The amount in the body is advisory only; the charge is
		// recomputed from the server-side cart.
		var body struct {
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		order, err := ps.CreateOrder(c.Request().Context(), cl.UserID)
		if errors.Is(err, services.ErrEmptyCart) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment provider unavailable", "retryable": true})
		}

		if body.Amount != 0 && body.Amount != order.Amount {
			ps.Log.Warn("client-supplied amount differs from server-computed charge",
				zap.String("userId", cl.UserID),
				zap.Int64("clientAmount", body.Amount),
				zap.Int64("chargedAmount", order.Amount))
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"order": echo.Map{
				"id":       order.ID,
				"amount":   order.Amount,
				"currency": order.Currency,
				"receipt":  order.Receipt,
			},
		})
	})

	p.POST("/verify", func(c echo.Context) error {
		var conf model.PaymentConfirmation
		if err := c.Bind(&conf); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		outcome := ps.Verify(conf)
		return c.JSON(http.StatusOK, echo.Map{
			"success": outcome == services.VerifyVerified,
			"outcome": outcome,
		})
	})
}
