package domain

import "errors"

// Error kinds. Every error surfaced to a client wraps exactly one of these;
// the HTTP layer maps kinds to status codes with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation error")
)

// Error is a classified failure with a client-facing detail message.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Unauthorized reasons, in the order the token verifier checks them.
var (
	ErrMissingToken           = newError(ErrUnauthorized, "Missing token")
	ErrInvalidToken           = newError(ErrUnauthorized, "Invalid token")
	ErrTokenExpired           = newError(ErrUnauthorized, "Token expired")
	ErrInvalidPayload         = newError(ErrUnauthorized, "Invalid token payload")
	ErrUserNotFoundOrInactive = newError(ErrUnauthorized, "User not found or inactive")
	ErrMissingOrg             = newError(ErrUnauthorized, "Missing organization")
)

var (
	ErrAdminsOnly   = newError(ErrForbidden, "Admins only")
	ErrOrgMismatch  = newError(ErrForbidden, "Organization mismatch")
	ErrNoOrgScope   = newError(ErrForbidden, "No organization scope")
	ErrRoleRequired = newError(ErrForbidden, "Only admins can change role or active state")
)

var (
	ErrIncorrectCredentials = newError(ErrValidation, "Incorrect email or password")
	ErrPasswordTooShort     = newError(ErrValidation, "Password must be at least 8 characters")
	ErrUnknownRole          = newError(ErrValidation, "Unknown role")
)

var (
	ErrEmailTaken       = newError(ErrConflict, "Email already registered")
	ErrWorkorderExists  = newError(ErrConflict, "Work order already exists")
	ErrWorkorderMissing = newError(ErrNotFound, "Work order not found")
	ErrOrgNotFound      = newError(ErrNotFound, "Organization not found")
)

// NotFound returns a NotFound error with the given detail.
func NotFound(detail string) error { return newError(ErrNotFound, detail) }

// Validation returns a ValidationError with the given detail.
func Validation(detail string) error { return newError(ErrValidation, detail) }

// DetailOf returns the client-facing message carried by err, if any.
func DetailOf(err error) (string, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Detail, true
	}
	return "", false
}
