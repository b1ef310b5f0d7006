package models

import "time"

// User represents a back-office account used for authentication.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the internal unique identifier of the user, assigned by the
	// database on insert.
	ID int64 `json:"id"`

	// Username is the unique, case-sensitive login identifier.
	Username string `json:"username"`

	// Email is the unique contact address used for identity verification
	// during password reset.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a derived hash, never plaintext.
	// It is not exposed via JSON and is used only at the persistence layer.
	PasswordHash string `json:"-"`

	// Password carries a plaintext candidate password on inbound
	// create/update requests only. It is hashed before persistence and is
	// never written back in responses.
	Password string `json:"password,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
