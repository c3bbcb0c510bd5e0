package main

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/external/razorpay"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/ratelimit"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/services"
)

// SignatureHeader carries the provider's HMAC of the raw request body.
const SignatureHeader = "X-Razorpay-Signature"

// registerWebhookRoutes wires the server-to-server callback from the
// payment provider. The route is public: trust comes from the body
// signature, not a user session. Rate limiting and signature
// verification both run before any business logic.
func registerWebhookRoutes(
	g *echo.Group,
	ps *services.PaymentService,
	limiter *ratelimit.Limiter,
	webhookSecret string,
	logger *zap.Logger,
) {
	g.POST("/payment/webhook", func(c echo.Context) error {
		ok, retryAfter := limiter.Allow(c.RealIP())
		if !ok {
			c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
		}

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable body"})
		}

		if webhookSecret == "" {
			// development-mode bypass; must be impossible to miss in logs
			logger.Warn("webhook admitted WITHOUT signature verification (no secret configured)",
				zap.String("remote", c.RealIP()))
		} else {
			sig := c.Request().Header.Get(SignatureHeader)
			if sig == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing signature"})
			}
			if !razorpay.VerifyWebhookSignature(body, sig, webhookSecret) {
				logger.Warn("webhook rejected: invalid signature", zap.String("remote", c.RealIP()))
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid signature"})
			}
		}

		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}

		if err := ps.HandleWebhookEvent(c.Request().Context(), payload); err != nil {
			// The provider retries on non-2xx. The gate already trusts
			// this caller; anything unprocessable is logged and
			// acknowledged rather than retried forever.
			logger.Warn("webhook event not processed", zap.Error(err))
			return c.JSON(http.StatusOK, echo.Map{"status": "ignored", "reason": err.Error()})
		}

		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
