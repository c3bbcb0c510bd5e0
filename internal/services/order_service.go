package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/pricing"
)

const (
	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
	PaymentMethodEMI      = "emi"
)

// SubmitRequest is one checkout attempt. Confirmation is required on
// the online path and ignored otherwise.
type SubmitRequest struct {
	PaymentMethod string
	Confirmation  *model.PaymentConfirmation
}

type OrderService struct {
	Carts      CartStore
	Orders     OrderStore
	Payments   *PaymentService
	Mailer     ReconciliationMailer // nil disables alerts
	AlertEmail string
	Log        *zap.Logger
}

func NewOrderService(
	cs CartStore,
	os OrderStore,
	ps *PaymentService,
	mailer ReconciliationMailer,
	alertEmail string,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		Carts:      cs,
		Orders:     os,
		Payments:   ps,
		Mailer:     mailer,
		AlertEmail: alertEmail,
		Log:        log,
	}
}

// Submit turns the user's cart into a persisted order.
//
// Online path: INITIATED -> AWAITING_PAYMENT -> {PAID,
// UNVERIFIED_PLAUSIBLE, FAILED}. A verified confirmation persists as
// paid. An unverifiable confirmation that still carries a payment id
// persists as pending with the reconciliation flag set — rejecting a
// real captured payment is worse than accepting one pending review.
// No payment id at all aborts, leaving the cart for a retry.
//
// Cash/EMI path: INITIATED -> PERSISTED directly, status pending.
//
// The cart is cleared only when persistence commits.
func (s *OrderService) Submit(ctx context.Context, userID string, req SubmitRequest) (*model.Order, error) {
	items, err := s.Carts.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &model.Order{
		OrderNumber:   newOrderNumber(),
		UserID:        userID,
		Items:         items,
		Totals:        pricing.Totals(items),
		PaymentMethod: req.PaymentMethod,
		Status:        model.OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	state := model.CheckoutInitiated

	switch req.PaymentMethod {
	case PaymentMethodRazorpay:
		state = model.CheckoutAwaitingPayment
		if state, err = s.resolveOnlinePayment(order, req.Confirmation); err != nil {
			s.Log.Info("checkout aborted, cart kept",
				zap.String("orderNumber", order.OrderNumber),
				zap.String("state", string(model.CheckoutAborted)))
			return nil, err
		}

	case PaymentMethodCOD, PaymentMethodEMI:
		// no provider round trip

	default:
		return nil, ErrInvalidPaymentMethod
	}

	if err := s.Orders.PersistCheckout(ctx, order); err != nil {
		s.Log.Error("order persistence failed; cart kept for retry",
			zap.String("orderNumber", order.OrderNumber),
			zap.String("state", string(state)),
			zap.Error(err))
		return nil, fmt.Errorf("order persistence: %w", err)
	}

	state = model.CheckoutPersisted
	s.Log.Info("order persisted",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("state", string(state)),
		zap.String("status", string(order.Status)),
		zap.Bool("needsReconciliation", order.NeedsReconciliation),
		zap.Int64("grandTotal", order.Totals.GrandTotal))

	if order.NeedsReconciliation {
		s.sendReconciliationAlert(ctx, order)
	}

	return order, nil
}

// resolveOnlinePayment maps the verification outcome onto the order.
// FAILED aborts the attempt; the other outcomes proceed to persistence.
func (s *OrderService) resolveOnlinePayment(order *model.Order, conf *model.PaymentConfirmation) (model.CheckoutState, error) {
	if conf == nil {
		// checkout dismissed before the provider produced anything
		return model.CheckoutFailed, ErrPaymentFailed
	}

	outcome := s.Payments.Verify(*conf)

	if conf.OrderID != "" {
		order.ProviderOrderID = &conf.OrderID
	}
	if conf.PaymentID != "" {
		order.ProviderPayID = &conf.PaymentID
	}

	switch outcome {
	case VerifyVerified:
		order.Status = model.OrderStatusPaid
		return model.CheckoutPaid, nil

	case VerifyUnverifiedPlausible:
		order.Status = model.OrderStatusPending
		order.NeedsReconciliation = true
		s.Log.Warn("accepting unverified-but-plausible payment pending manual reconciliation",
			zap.String("orderNumber", order.OrderNumber),
			zap.String("providerPaymentId", conf.PaymentID))
		return model.CheckoutUnverifiedPlausible, nil

	default:
		return model.CheckoutFailed, ErrPaymentFailed
	}
}

func (s *OrderService) sendReconciliationAlert(ctx context.Context, order *model.Order) {
	if s.Mailer == nil || s.AlertEmail == "" {
		return
	}

	paymentID := ""
	if order.ProviderPayID != nil {
		paymentID = *order.ProviderPayID
	}

	if err := s.Mailer.SendReconciliationAlert(ctx, s.AlertEmail, order.OrderNumber, paymentID); err != nil {
		// best effort; the order itself is already flagged and queryable
		s.Log.Warn("reconciliation alert failed",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err))
	}
}

func (s *OrderService) ListNeedingReconciliation(ctx context.Context) ([]model.Order, error) {
	return s.Orders.ListNeedingReconciliation(ctx)
}

func newOrderNumber() string {
	return fmt.Sprintf("FF-%d-%s", time.Now().Unix(), strings.ToUpper(uuid.NewString()[:8]))
}
