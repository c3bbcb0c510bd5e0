package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/external/razorpay"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/pricing"
)

// Currency is fixed; multi-currency is out of scope.
const Currency = "INR"

// VerifyOutcome is the tri-state result of checking a payment
// confirmation. A failed signature with a payment id present is not a
// hard failure; the caller applies the reconciliation policy.
type VerifyOutcome string

const (
	VerifyVerified            VerifyOutcome = "verified"
	VerifyUnverifiedPlausible VerifyOutcome = "unverified_plausible"
	VerifyFailed              VerifyOutcome = "failed"
)

type PaymentService struct {
	Carts     CartStore
	Orders    OrderStore
	Provider  PaymentProvider
	KeySecret string
	Log       *zap.Logger
}

func NewPaymentService(
	cs CartStore,
	os OrderStore,
	provider PaymentProvider,
	keySecret string,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		Carts:     cs,
		Orders:    os,
		Provider:  provider,
		KeySecret: keySecret,
		Log:       log,
	}
}

// CreateOrder creates a provider order for the user's current cart. The
// charge amount is recomputed here from the server-side cart state;
// whatever amount the client sent is advisory only.
func (s *PaymentService) CreateOrder(ctx context.Context, userID string) (*model.PaymentOrder, error) {
	items, err := s.Carts.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := pricing.Totals(items)

	// Fresh receipt per attempt; the uuid suffix keeps two attempts in
	// the same millisecond from colliding on the provider side.
	receipt := fmt.Sprintf("rcpt-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])

	order, err := s.Provider.CreateOrder(totals.GrandTotal, Currency, receipt, map[string]interface{}{
		"userId": userID,
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("payment order created",
		zap.String("providerOrderId", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("receipt", receipt))

	return order, nil
}

// Verify checks the confirmation signature forwarded by the client.
// A mismatch is never an error: either the confirmation carries a
// payment id and is surfaced as unverified-but-plausible, or it is a
// plain failure.
func (s *PaymentService) Verify(conf model.PaymentConfirmation) VerifyOutcome {
	if razorpay.VerifyPaymentSignature(conf.OrderID, conf.PaymentID, conf.Signature, s.KeySecret) {
		return VerifyVerified
	}

	if conf.PaymentID != "" {
		s.Log.Warn("payment signature mismatch with payment id present",
			zap.String("providerOrderId", conf.OrderID),
			zap.String("providerPaymentId", conf.PaymentID))
		return VerifyUnverifiedPlausible
	}

	return VerifyFailed
}

// HandleWebhookEvent runs after the ingress gate has rate-limited the
// caller and verified the body signature. Unknown events are ignored.
func (s *PaymentService) HandleWebhookEvent(ctx context.Context, payload map[string]interface{}) error {
	event, _ := payload["event"].(string)

	switch event {
	case "payment.captured", "order.paid":
		orderID := paymentEntityField(payload, "order_id")
		if orderID == "" {
			return errors.New("missing order id in payload")
		}
		return s.Orders.MarkPaidByProviderOrder(ctx, orderID)

	case "payment.failed":
		s.Log.Info("provider reported payment failure",
			zap.String("providerOrderId", paymentEntityField(payload, "order_id")),
			zap.String("providerPaymentId", paymentEntityField(payload, "id")))
		return nil
	}

	return nil
}

// paymentEntityField digs payload.payment.entity.<field> out of a
// provider webhook body.
func paymentEntityField(payload map[string]interface{}, field string) string {
	p, _ := payload["payload"].(map[string]interface{})
	payment, _ := p["payment"].(map[string]interface{})
	entity, _ := payment["entity"].(map[string]interface{})
	v, _ := entity[field].(string)
	return v
}
