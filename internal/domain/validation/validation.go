// Package validation holds the field format rules enforced before any
// persistence call. The rules match the account directory's constraints, so a
// value that passes here is accepted by every downstream operation.
package validation

import (
	"regexp"
	"strings"
)

// Field length bounds.
const (
	NameMinLength     = 20
	NameMaxLength     = 60
	AddressMaxLength  = 400
	PasswordMinLength = 8
	PasswordMaxLength = 16
)

var (
	emailPattern           = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	passwordUppercase      = regexp.MustCompile(`[A-Z]`)
	passwordSpecialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Name requires a full name between 20 and 60 characters.
func Name(value string) string {
	if len(value) < NameMinLength || len(value) > NameMaxLength {
		return "Name must be between 20 and 60 characters"
	}

	return ""
}

// Address allows at most 400 characters; empty is permitted.
func Address(value string) string {
	if len(value) > AddressMaxLength {
		return "Address must not exceed 400 characters"
	}

	return ""
}

// Password requires 8 to 16 characters with at least one uppercase letter and
// one special character.
func Password(value string) string {
	if len(value) < PasswordMinLength || len(value) > PasswordMaxLength {
		return "Password must be between 8 and 16 characters"
	}
	if !passwordUppercase.MatchString(value) {
		return "Password must include at least one uppercase letter"
	}
	if !passwordSpecialPattern.MatchString(value) {
		return "Password must include at least one special character"
	}

	return ""
}

// Email requires an RFC-like address shape.
func Email(value string) string {
	if !emailPattern.MatchString(value) {
		return "Please enter a valid email address"
	}

	return ""
}

// EmailIsValid reports whether the value matches the email pattern.
func EmailIsValid(value string) bool {
	return emailPattern.MatchString(value)
}

// PasswordIsValid reports whether the value satisfies the password rules.
func PasswordIsValid(value string) bool {
	return Password(value) == ""
}

// Errors maps field names to their first violation message.
type Errors map[string]string

// Error renders the violations as a single semicolon-joined string, in no
// particular field order beyond Go's map iteration.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}

	return strings.Join(parts, "; ")
}

// Registration validates the full registration form.
func Registration(name, email, address, password string) Errors {
	errs := Errors{}
	if msg := Name(name); msg != "" {
		errs["name"] = msg
	}
	if msg := Email(email); msg != "" {
		errs["email"] = msg
	}
	if msg := Address(address); msg != "" {
		errs["address"] = msg
	}
	if msg := Password(password); msg != "" {
		errs["password"] = msg
	}
	if len(errs) == 0 {
		return nil
	}

	return errs
}

// Store validates the new-store form. Stores reuse the name, email and
// address rules of accounts.
func Store(name, email, address string) Errors {
	errs := Errors{}
	if msg := Name(name); msg != "" {
		errs["name"] = msg
	}
	if msg := Email(email); msg != "" {
		errs["email"] = msg
	}
	if msg := Address(address); msg != "" {
		errs["address"] = msg
	}
	if len(errs) == 0 {
		return nil
	}

	return errs
}
