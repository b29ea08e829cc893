// Package errors is the single import for error handling in the service.
// Sentinel matching goes through the standard library; wrapping goes through
// pkg/errors so every wrapped error carries the stack of its first wrap site.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain sentinel error without a stack.
func New(text string) error {
	return stderrors.New(text)
}

// Is matches target anywhere in the chain, including through pkg/errors wrappers
// and *echo.HTTPError internals.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in the chain assignable to target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Wrap annotates err with message and a stack. A nil err stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack on err. A nil err stays nil.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf builds a new error with a stack.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}
