package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates a failed login. One error for unknown
	// email, wrong password and deactivated account, so callers cannot
	// enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the token is past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed indicates the string is not a well-formed signed token
	ErrTokenMalformed = errors.New("token malformed")

	// ErrSignatureInvalid indicates the token signature does not verify
	ErrSignatureInvalid = errors.New("token signature invalid")

	// ErrTokenInvalid indicates the token failed verification for any
	// non-expiry reason (malformed, bad signature, wrong issuer/audience)
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenRevoked indicates the token id is on the revocation list
	ErrTokenRevoked = errors.New("token revoked")

	// ErrSessionNotFound indicates no live session backs the token
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidTokenType indicates an access token was presented where a
	// refresh token was required, or vice versa
	ErrInvalidTokenType = errors.New("invalid token type")

	// ErrUserInactive indicates the account exists but is deactivated
	ErrUserInactive = errors.New("user inactive")
)

// InfrastructureError wraps a store or network fault. It is kept distinct
// from the authentication errors above: a Redis timeout during a revocation
// check must never surface as "token invalid".
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// Infrastructure wraps err as an InfrastructureError for operation op.
func Infrastructure(op string, err error) error {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructure reports whether err is (or wraps) an InfrastructureError.
func IsInfrastructure(err error) bool {
	var ie *InfrastructureError
	return errors.As(err, &ie)
}
