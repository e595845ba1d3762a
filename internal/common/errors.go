// Package common defines shared constants and sentinel errors used across
// the DishDash server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")
	ErrStorage      = errors.New("storage error")

	// Startup errors. Missing mail credentials or secrets are fatal.
	ErrConfig = errors.New("configuration error")

	// The mail transport rejected the recipient or the message.
	ErrDelivery = errors.New("delivery error")

	// Verification and session carrier errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// The submitted form token does not match the CSRF cookie.
	ErrCSRFMismatch = errors.New("csrf token mismatch")
)
