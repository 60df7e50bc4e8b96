package auth

import "errors"

// Sentinel errors returned by the Service. Handlers match on these with
// errors.Is to pick the user-facing response; anything else is treated as
// internal and only a generic message leaves the server.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("incorrect password")
)

// ValidationError carries the first violated rule's message for a bad
// register/login payload. It is shown to the user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}
