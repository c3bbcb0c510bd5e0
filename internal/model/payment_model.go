package model

// PaymentOrder is a provider-side order created before checkout opens.
// Immutable after creation; every checkout attempt gets a fresh receipt.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// PaymentConfirmation is what the client forwards after the provider's
// checkout UI completes. The signature is verified server-side before
// anything in it is trusted.
type PaymentConfirmation struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
