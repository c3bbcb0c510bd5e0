package main

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/middleware"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/services"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/session"
)

func registerOrderRoutes(g *echo.Group, os *services.OrderService, sessions session.Store, secure bool) {
	p := g.Group("/orders")

	// ============================
	// RECONCILIATION QUEUE
	// (admin session, not user identity)
	// ============================
	p.GET("/reconciliation", func(c echo.Context) error {
		orders, err := os.ListNeedingReconciliation(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": orders})
	}, middleware.AdminGate(sessions, secure))

	// ============================
	// ORDER SUBMISSION
	// ============================
	p.Use(middleware.IdentityMiddleware())

	p.POST("", func(c echo.Context) error {
		cl := middleware.GetIdentity(c)
		if cl == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}

		var body struct {
			PaymentMethod string                     `json:"paymentMethod"`
			Confirmation  *model.PaymentConfirmation `json:"confirmation"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		order, err := os.Submit(c.Request().Context(), cl.UserID, services.SubmitRequest{
			PaymentMethod: body.PaymentMethod,
			Confirmation:  body.Confirmation,
		})

		switch {
		case errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrInvalidPaymentMethod):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})

		case errors.Is(err, services.ErrPaymentFailed):
			// cart kept; the client shows a retry affordance
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": err.Error()})

		case err != nil:
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error(), "retryable": true})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"success":             true,
			"orderId":             order.OrderNumber,
			"orderNumber":         order.OrderNumber,
			"status":              order.Status,
			"needsReconciliation": order.NeedsReconciliation,
		})
	})
}
