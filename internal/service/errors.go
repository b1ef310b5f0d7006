package service

import "errors"

// Domain errors surfaced by the user service. Each one is a non-retryable
// input/state conflict; the transport layer maps them to user-facing
// statuses. Callers match with [errors.Is].
var (
	// ErrInvalidCredentials is returned on login when the user does not
	// exist or the password does not verify. The two cases are deliberately
	// indistinguishable to avoid username enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when a registration or update would
	// claim a username that another live user already holds.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when a create or update would claim an
	// email that another live user already holds.
	ErrEmailTaken = errors.New("email already taken")

	// ErrPasswordPolicyViolation is returned when a candidate password
	// fails the complexity rule (length, letter, digit).
	ErrPasswordPolicyViolation = errors.New("password must be at least 6 characters and contain a letter and a digit")

	// ErrUserNotFound is returned by singular lookups and write paths when
	// the addressed user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailMismatch is returned by password reset when the supplied
	// email does not match the one stored for the account.
	ErrEmailMismatch = errors.New("email verification failed")

	// ErrTokenIsExpiredOrInvalid is returned whenever a presented token
	// fails signature, expiry, or issuer checks, including malformed input.
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrTokenCreationFailed is returned when signing a new token fails.
	ErrTokenCreationFailed = errors.New("token creation failed")
)
