// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"github.com/go-playground/validator/v10"
)

// EchoValidator wraps a validator.Validate instance for echo.
type EchoValidator struct {
	validator *validator.Validate
}

// New creates an EchoValidator with struct tag validation enabled.
func New() *EchoValidator {
	return &EchoValidator{
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Handlers map the returned tag
// violations to a 400 response.
func (v *EchoValidator) Validate(i any) error {
	return v.validator.Struct(i)
}
