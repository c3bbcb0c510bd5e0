package services

import (
	"context"

	"github.com/gitfusionforge-code/FusionForgePCs-sub002/internal/model"
)

// CartStore is the authoritative server-side cart state.
type CartStore interface {
	GetItems(ctx context.Context, userID string) ([]model.CartLineItem, error)
	GetItem(ctx context.Context, userID, productID string) (*model.CartLineItem, error)
	InsertItem(ctx context.Context, userID string, item model.CartLineItem) error
	SetQuantity(ctx context.Context, userID, productID string, qty int) error
	DeleteItem(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// OrderStore persists orders produced by the submission pipeline.
type OrderStore interface {
	// PersistCheckout writes the order and clears the user's cart
	// atomically; on failure the cart is untouched.
	PersistCheckout(ctx context.Context, o *model.Order) error
	MarkPaidByProviderOrder(ctx context.Context, providerOrderID string) error
	ListNeedingReconciliation(ctx context.Context) ([]model.Order, error)
}

// PaymentProvider creates provider-side payment orders.
type PaymentProvider interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*model.PaymentOrder, error)
}

// ReconciliationMailer alerts a human when an order is accepted on an
// unverifiable payment confirmation.
type ReconciliationMailer interface {
	SendReconciliationAlert(ctx context.Context, toEmail, orderNumber, paymentID string) error
}
