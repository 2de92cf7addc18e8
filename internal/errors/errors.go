// Package errors bridges stdlib error inspection with pkg/errors stack
// traces, so callers get both through one import.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// As finds the first error in err's tree that matches target. The central
// HTTP error handler relies on this to unwrap domain errors carried behind
// pkg/errors stack annotations.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Wrap annotates err with a stack trace and the supplied message.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}
