package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// CheckoutState tracks a single checkout attempt through the submission
// pipeline. Only PERSISTED writes anything; ABORTED leaves the cart intact.
type CheckoutState string

const (
	CheckoutInitiated           CheckoutState = "INITIATED"
	CheckoutAwaitingPayment     CheckoutState = "AWAITING_PAYMENT"
	CheckoutPaid                CheckoutState = "PAID"
	CheckoutUnverifiedPlausible CheckoutState = "UNVERIFIED_PLAUSIBLE"
	CheckoutFailed              CheckoutState = "FAILED"
	CheckoutPersisted           CheckoutState = "PERSISTED"
	CheckoutAborted             CheckoutState = "ABORTED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutPersisted || s == CheckoutAborted
}

// Order is the persisted record produced by the submission pipeline.
// Status transitions past paid/pending are fulfillment-driven.
type Order struct {
	OrderNumber string         `db:"ordernumber" json:"orderNumber"`
	UserID      string         `db:"userid" json:"userId"`
	Items       []CartLineItem `db:"items" json:"items"`
	Totals      CartTotals     `db:"totals" json:"totals"`

	// PaymentMethod is "razorpay" for the online path, "cod" or "emi"
	// otherwise. Provider ids are set only on the online path.
	PaymentMethod   string  `db:"paymentmethod" json:"paymentMethod"`
	ProviderOrderID *string `db:"providerorderid" json:"providerOrderId,omitempty"`
	ProviderPayID   *string `db:"providerpayid" json:"providerPaymentId,omitempty"`

	Status OrderStatus `db:"status" json:"status"`

	// NeedsReconciliation marks orders accepted on an unverifiable but
	// plausible payment confirmation, pending human review.
	NeedsReconciliation bool `db:"needsreconciliation" json:"needsReconciliation"`

	CreatedAt time.Time `db:"createdat" json:"createdAt"`
}
