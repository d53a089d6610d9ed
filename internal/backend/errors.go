package backenderrors

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnexpectedStatus  = errors.New("unexpected status")
)
