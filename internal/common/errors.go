package common

import "errors"

// Sentinel errors shared between layers. Callers should match them with
// errors.Is.
var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrStaleSession = errors.New("stale session operation discarded")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
)
