package service

import "errors"

// Sentinel errors recovered at the handler boundary and mapped to HTTP
// statuses. None of these should ever crash the process.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNotEligible        = errors.New("a completed order at this restaurant is required")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrInvalidCartAction  = errors.New("invalid cart action")
	ErrInvalidCredentials = errors.New("invalid username/email or password")
	ErrUserExists         = errors.New("username or email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrOrderInProgress    = errors.New("an order for this cart is already being placed")
)
