package services

import "errors"

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidPrice         = errors.New("unit price must be positive")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")

	// ErrPaymentFailed means the provider flow was abandoned or produced
	// no payment id; the checkout attempt is aborted and the cart kept.
	ErrPaymentFailed = errors.New("payment failed or abandoned")

	ErrNotAdmin = errors.New("email is not on the admin allow-list")
)
