package pizzeria

import (
	"github.com/pkg/errors"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// Error is a failure kind reported by the pizzeria.
// Operations wrap one of the sentinels below with context; match them with errors.Is.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

var (
	// Malformed input
	ErrInvalidArgument = newError(models.ErrValidationFailed, "invalid argument")

	// Registration outcomes, checked in this order
	ErrInvalidCredentials = newError(models.ErrInvalidCredentials, "email and password are required")
	ErrInvalidProfile     = newError(models.ErrInvalidProfile, "personal information is invalid")
	ErrInvalidEmail       = newError(models.ErrInvalidEmail, "email address is malformed")
	ErrDuplicateAccount   = newError(models.ErrDuplicateAccount, "email is already registered")

	ErrNotConnected = newError(models.ErrNotConnected, "no active session")
	ErrNotFound     = newError(models.ErrNotFound, "not found")
	ErrDuplicateKey = newError(models.ErrConflict, "already exists")
	ErrForbidden    = newError(models.ErrForbidden, "ingredient is forbidden for this pizza type")

	// Illegal state transition, ownership mismatch or unknown order
	ErrOrder = newError(models.ErrOrder, "order error")
)

// KindOf returns the sentinel kind carried by err, or nil if err is not a pizzeria error
func KindOf(err error) *Error {
	var kind *Error
	if errors.As(err, &kind) {
		return kind
	}
	return nil
}
