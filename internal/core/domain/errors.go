package domain

import "errors"

// Error kinds returned by the core. Callers match them with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrPermission        = errors.New("permission denied")
	ErrNotFound          = errors.New("account not found")
	ErrAuthentication    = errors.New("invalid username or password")
	ErrInactiveAccount   = errors.New("account is not activated yet, contact an administrator")
	ErrInvalidCredential = errors.New("token is invalid or expired")
	ErrUnauthenticated   = errors.New("authentication credentials were not provided or are invalid")
)

// ValidationError describes a problem with a single input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a field-scoped ValidationError.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Uniqueness violations reported by the account store.
var (
	ErrUsernameTaken = &ValidationError{Field: "username", Message: "username already exists"}
	ErrEmailTaken    = &ValidationError{Field: "email", Message: "email already exists"}
)
