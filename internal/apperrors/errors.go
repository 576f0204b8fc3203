package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds for the events client. The gateway classifies every server
// response into exactly one of these; callers branch with errors.Is instead
// of matching on message text.
var (
	// Initialization errors
	ErrInitialization = errors.New("initialization failed")

	// Token / session errors
	ErrAuthExpired    = errors.New("auth expired")
	ErrReloginStarted = errors.New("relogin started")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// Transport errors
	ErrNotFound    = errors.New("not found")
	ErrHTTPFailure = errors.New("http failure")
	ErrNetwork     = errors.New("network failure")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
