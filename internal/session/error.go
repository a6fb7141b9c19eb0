package session

import "errors"

var (
	// -- Validation & Input --
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")

	// -- Authorization --
	ErrNotAuthenticated = errors.New("no usable session")
	ErrForbidden        = errors.New("role not allowed")
)
