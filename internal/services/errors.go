package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP statuses at the request boundary; nothing is retried internally.
var (
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("access denied")
	ErrCannotCancel        = errors.New("cannot cancel this order")
	ErrPaymentVerification = errors.New("invalid payment signature")
)
