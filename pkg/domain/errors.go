package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")

	// ErrMissingIntegration is returned when no OAuth credentials have been
	// saved for the user/provider pair yet
	ErrMissingIntegration = errors.New("integration not configured")
	// ErrNotConnected is returned when credentials exist but no refresh token
	// was ever obtained; the user must redo the consent flow
	ErrNotConnected = errors.New("integration not connected")
	// ErrProviderRejected wraps an error payload returned by the external
	// provider; the provider's message is appended verbatim to aid the user
	// in debugging their own OAuth app configuration
	ErrProviderRejected = errors.New("provider rejected request")
)
