package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/ratelimit"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/services"
)

const webhookTestSecret = "whsec-test"

type stubCartStore struct{}

func (stubCartStore) GetItems(context.Context, string) ([]model.CartLineItem, error) {
	return nil, nil
}
func (stubCartStore) GetItem(context.Context, string, string) (*model.CartLineItem, error) {
	return nil, nil
}
func (stubCartStore) InsertItem(context.Context, string, model.CartLineItem) error { return nil }
func (stubCartStore) SetQuantity(context.Context, string, string, int) error       { return nil }
func (stubCartStore) DeleteItem(context.Context, string, string) error             { return nil }
func (stubCartStore) Clear(context.Context, string) error                          { return nil }

type stubOrderStore struct {
	paid []string
}

func (s *stubOrderStore) PersistCheckout(context.Context, *model.Order) error { return nil }
func (s *stubOrderStore) MarkPaidByProviderOrder(_ context.Context, providerOrderID string) error {
	s.paid = append(s.paid, providerOrderID)
	return nil
}
func (s *stubOrderStore) ListNeedingReconciliation(context.Context) ([]model.Order, error) {
	return nil, nil
}

func newWebhookEcho(secret string, limiter *ratelimit.Limiter) (*echo.Echo, *stubOrderStore) {
	orders := &stubOrderStore{}
	ps := services.NewPaymentService(stubCartStore{}, orders, nil, "key-secret", zap.NewNop())

	e := echo.New()
	registerWebhookRoutes(e.Group("/api"), ps, limiter, secret, zap.NewNop())
	return e, orders
}

func signBody(body string) string {
	mac := hmac.New(sha256.New, []byte(webhookTestSecret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(e *echo.Echo, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/payment/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const capturedEvent = `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`

func TestWebhook_ValidSignature(t *testing.T) {
	e, orders := newWebhookEcho(webhookTestSecret, ratelimit.New(time.Minute, 10))

	rec := postWebhook(e, capturedEvent, signBody(capturedEvent))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"order_1"}, orders.paid)
}

func TestWebhook_MissingSignature(t *testing.T) {
	e, orders := newWebhookEcho(webhookTestSecret, ratelimit.New(time.Minute, 10))

	rec := postWebhook(e, capturedEvent, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing signature")
	assert.Empty(t, orders.paid)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	e, orders := newWebhookEcho(webhookTestSecret, ratelimit.New(time.Minute, 10))

	// signature over a different body
	rec := postWebhook(e, capturedEvent, signBody(capturedEvent+" "))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid signature")
	assert.Empty(t, orders.paid)
}

func TestWebhook_NoSecretBypassesVerification(t *testing.T) {
	e, orders := newWebhookEcho("", ratelimit.New(time.Minute, 10))

	rec := postWebhook(e, capturedEvent, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"order_1"}, orders.paid)
}

func TestWebhook_RateLimited(t *testing.T) {
	e, _ := newWebhookEcho(webhookTestSecret, ratelimit.New(time.Minute, 10))

	sig := signBody(capturedEvent)
	for i := 0; i < 10; i++ {
		rec := postWebhook(e, capturedEvent, sig)
		require.Equal(t, http.StatusOK, rec.Code, "call %d", i+1)
	}

	rec := postWebhook(e, capturedEvent, sig)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestWebhook_WindowElapsesAndAdmitsAgain(t *testing.T) {
	e, _ := newWebhookEcho(webhookTestSecret, ratelimit.New(50*time.Millisecond, 10))

	sig := signBody(capturedEvent)
	for i := 0; i < 11; i++ {
		postWebhook(e, capturedEvent, sig)
	}
	rec := postWebhook(e, capturedEvent, sig)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	time.Sleep(60 * time.Millisecond)

	rec = postWebhook(e, capturedEvent, sig)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhook_RateLimitCheckedBeforeSignature(t *testing.T) {
	e, _ := newWebhookEcho(webhookTestSecret, ratelimit.New(time.Minute, 1))

	postWebhook(e, capturedEvent, signBody(capturedEvent))

	// over the cap, even a badly signed call gets the throttling error,
	// not an authentication one
	rec := postWebhook(e, capturedEvent, "bogus")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
