package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrUnauthorized        = errors.New("not allowed to access this order")
	ErrAlreadyCancelled    = errors.New("order is already cancelled")
	ErrAlreadyCompleted    = errors.New("order is already completed")
	ErrCancelWindowExpired = errors.New("orders can only be cancelled within 24 hours")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrInvalidStatus       = errors.New("unknown order status")
	ErrInvalidDeliveryType = errors.New("unknown delivery type")
	ErrIncompleteAddress   = errors.New("home delivery requires street, city and postal code")
	ErrInvalidDeliveryCost = errors.New("delivery cost cannot be negative")
)
