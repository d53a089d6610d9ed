package serviceerrors

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrContextCanceled      = errors.New("context canceled")
	ErrDeadlineExceeded     = errors.New("deadline exceeded")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrEmptyCart            = errors.New("empty cart")
	ErrOrderNotCreated      = errors.New("order not created")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMalformedResponse    = errors.New("malformed response")
)
