// Package service provides application-level services for managing users,
// scores and commentaries.
package service

import "errors"

// Error handling follows two deliberate idioms, and call sites depend on the
// distinction:
//
//  1. Fail-fast: operations that need an entity to proceed return a typed
//     error — an *InvalidArgumentError carrying a caller-facing message, or a
//     store "not found" sentinel. The API layer translates these to status
//     codes.
//  2. Optional: lookup operations whose miss is a normal outcome (user by
//     slug, user by email, score by id) return (nil, nil) instead of failing.
var (
	// ErrInvalidArgument is the sentinel all *InvalidArgumentError values
	// match via errors.Is. Callers that don't care about the message can
	// check against this.
	ErrInvalidArgument = errors.New("invalid argument")
)

// InvalidArgumentError reports a request that references entities in a way
// the service cannot honor. The message is caller-facing and stable: clients
// and tests assert on it verbatim.
type InvalidArgumentError struct {
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalidArgument) match any InvalidArgumentError.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewInvalidArgumentError creates an InvalidArgumentError with the given
// caller-facing message.
func NewInvalidArgumentError(message string) *InvalidArgumentError {
	return &InvalidArgumentError{Message: message}
}
