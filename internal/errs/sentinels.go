// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrValidation indicates a request rejected before reaching the store
	// (missing required field, malformed reference).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested entity does not exist. Authorization
	// denials are surfaced under this sentinel as well, so callers cannot tell
	// another tenant's entity apart from a missing one.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrParentNotFound indicates an operation referenced a non-existent parent row.
	ErrParentNotFound = errors.New("parent not found")

	// ErrIntegrity indicates a broken ownership chain (an orphaned row). It is an
	// internal-consistency fault, never a legitimate access boundary.
	ErrIntegrity = errors.New("data integrity fault")

	// ErrTxConflict indicates a concurrent write collision. The whole operation
	// may be retried by the caller.
	ErrTxConflict = errors.New("transaction conflict")

	// ErrUnauthenticated indicates the request carried no verifiable principal.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrThrottled indicates sign-in is temporarily blocked after repeated
	// failed attempts.
	ErrThrottled = errors.New("too many attempts")
)
