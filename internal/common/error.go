// Package common defines shared constants and sentinel errors used across
// client and server layers of cryptopix. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Cipher/codec errors.
	ErrInvalidPassword      = errors.New("invalid password")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrMalformedEnvelope    = errors.New("malformed envelope")

	// Repository-level errors. A missing object and an object owned by
	// another user both surface as ErrorNotFound.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Boundary errors.
	ErrEmptyPayload = errors.New("empty payload")

	// Store failures. The only class a caller may retry.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
