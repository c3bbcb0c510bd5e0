package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
)

// providerTimeoutSeconds bounds every call to the Razorpay API. The
// provider gives no cancellation hook; a call in flight settles or fails.
const providerTimeoutSeconds = 15

type Client struct {
	api *razorpay.Client
}

func NewClient(keyID, keySecret string) *Client {
	api := razorpay.NewClient(keyID, keySecret)
	api.SetTimeout(providerTimeoutSeconds)
	return &Client{api: api}
}

// CreateOrder creates a provider-side order. The amount must already be
// the server-recomputed cart total, never a client-supplied figure.
func (c *Client) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*model.PaymentOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	resp, err := c.api.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := resp["id"].(string)
	if !ok || id == "" {
		return nil, errors.New("razorpay order create: response missing order id")
	}

	return &model.PaymentOrder{
		ID:       id,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

// VerifyPaymentSignature checks the checkout confirmation signature:
// HMAC-SHA256(secret, orderID + "|" + paymentID), hex-encoded.
// Comparison is constant-time.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	return verifyHMAC([]byte(orderID+"|"+paymentID), signature, secret)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header against
// HMAC-SHA256(secret, rawBody), hex-encoded. Comparison is constant-time.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	return verifyHMAC(body, signature, secret)
}

func verifyHMAC(message []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
