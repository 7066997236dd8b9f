package pocketvault

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/pocketvault/pocketvault/pkg/pocketvault/internal"
)

// InfrastructureError represents a shell-level error: catalogs failed to
// load, a screen panicked, the preference store is unusable. These errors
// are typically fatal or require shell-level recovery.
//
// Use this for errors that the consuming screen cannot reasonably
// handle or recover from at the domain level.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "load_catalogs", "screen")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pocketvault: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pocketvault: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// Guard runs fn and traps any panic it raises, logging it with its stack
// and returning it as an *InfrastructureError for op. Errors returned by fn
// pass through unchanged.
func Guard(op string, fn func() error) (err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		cause, ok := v.(error)
		if !ok {
			cause = fmt.Errorf("panic: %v", v)
		}
		err = NewInfrastructureError(op, cause)
		internal.GetLogger().Error("trapped panic", "op", op, "error", cause, "stack", string(debug.Stack()))
	}()

	return fn()
}
