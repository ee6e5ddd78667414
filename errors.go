package auth

import (
	"errors"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty")

// ErrMismatchedHashAndPassword is the internal bcrypt mismatch sentinel.
// It never leaves the package; SessionIssuer maps it to ErrInvalidCredentials.
var ErrMismatchedHashAndPassword = errors.New("hash and password mismatch")

// ErrConflict is returned when a username or email is already taken.
var ErrConflict = goerrors.New("username or email already in use", goerrors.CategoryConflict).
	WithTextCode("ACCOUNT_CONFLICT").
	WithCode(goerrors.CodeConflict)

// ErrInvalidCredentials is returned for an unknown username and for a wrong
// password alike, so callers cannot probe which accounts exist.
var ErrInvalidCredentials = goerrors.New("invalid username or password", goerrors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(goerrors.CodeUnauthorized)

// ErrInvalidToken covers every token verification failure: wrong segment
// count, bad signature, undecodable claims, and expiry. The sub-reason is
// logged server side but never reported to the caller.
var ErrInvalidToken = goerrors.New("invalid or expired session token", goerrors.CategoryAuth).
	WithTextCode("TOKEN_INVALID").
	WithCode(goerrors.CodeUnauthorized)

// ErrAccountNotFound is the store-level miss. It is mapped to
// ErrInvalidCredentials before leaving SessionIssuer.
var ErrAccountNotFound = goerrors.New("account not found", goerrors.CategoryNotFound).
	WithTextCode("ACCOUNT_NOT_FOUND").
	WithCode(goerrors.CodeNotFound)

// IsConflict reports whether err is a uniqueness conflict.
func IsConflict(err error) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.Category == goerrors.CategoryConflict
	}
	return false
}

// IsInvalidCredentials reports whether err is a credential failure.
func IsInvalidCredentials(err error) bool {
	return goerrors.Is(err, ErrInvalidCredentials)
}

// IsInvalidToken reports whether err is a token verification failure.
func IsInvalidToken(err error) bool {
	return goerrors.Is(err, ErrInvalidToken)
}

// isUniqueViolation detects a uniqueness constraint surfaced by the driver
// at write time. The check/insert race makes this reachable even after a
// clean pre-check, and it must map to the same Conflict.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func wrapInternal(err error, msg string) error {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg)
}
