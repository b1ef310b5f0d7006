package service

import (
	"context"

	"github.com/agrolab/backoffice/models"
)

// UserService is the authentication and account-lifecycle engine.
//
// All operations are safe for concurrent use. Multi-step check-then-write
// sequences are race-safe through the repository's transactional guarantees
// and the database's uniqueness constraints.
type UserService interface {
	// Login authenticates a user by username and password. On success it
	// records visit and activity statistics, issues a token, and returns
	// the token together with the account's public identity.
	Login(ctx context.Context, username, password string) (models.LoginResponse, error)

	// Register creates a self-service account from username and password.
	// An email can be attached later through the administrative update path.
	Register(ctx context.Context, username, password string) error

	// CreateUser is the administrative creation path; user.Password carries
	// the plaintext candidate and is hashed before persistence.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// VerifyEmail reports whether the stored email for username matches
	// email exactly (case-sensitive).
	VerifyEmail(ctx context.Context, username, email string) (bool, error)

	// ResetPassword sets a new password after verifying the username/email
	// identity match.
	ResetPassword(ctx context.Context, username, email, newPassword string) error

	// UpdateUser rewrites username/email and, when user.Password is
	// non-empty, the credential of an existing account.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// DeleteUser irreversibly removes the account with the given id.
	DeleteUser(ctx context.Context, id int64) error

	// Logout drops the active-session entry for username.
	Logout(ctx context.Context, username string)

	FindByUsername(ctx context.Context, username string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// GetUserByID returns (user, true, nil) when the account exists and
	// (zero, false, nil) when it does not; the transport layer maps absence
	// to its own not-found response.
	GetUserByID(ctx context.Context, id int64) (models.User, bool, error)

	// ParseToken validates a raw token string and returns its decoded form.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// StatsService tracks coarse-grained visitor and active-session activity.
//
// Implementations must be concurrency-safe without a coarse global lock:
// concurrent RecordVisit calls may not lose increments, and ActiveCount must
// never double-count or go negative under concurrent inserts.
type StatsService interface {
	// RecordVisit increments the total-visitor counter.
	RecordVisit()

	// RecordActive sets or refreshes the last-activity timestamp for username.
	RecordActive(username string)

	// RemoveActive drops the entry for username if present; idempotent.
	RemoveActive(username string)

	// ActiveCount purges entries older than the inactivity threshold and
	// returns the number of remaining active sessions.
	ActiveCount() int

	// TotalVisitors returns the current counter value, monotonically
	// non-decreasing for the process lifetime.
	TotalVisitors() int64
}
