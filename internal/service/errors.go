package service

import "errors"

// Business-rule and validation errors surfaced to callers. Anything else
// coming out of a service is an infrastructure failure already logged with
// its cause and reduced to a generic error.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrProductNotFound    = errors.New("product not found")
	ErrOrderFailed        = errors.New("order failed")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)
