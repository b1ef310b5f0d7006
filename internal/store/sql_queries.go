package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/agrolab/backoffice/models"
)

// Self-registration creates accounts without an email, so the column is
// nullable; NULLIF/COALESCE keep the Go model a plain string where the empty
// string means "unset" while the unique index still ignores NULLs.
const (
	userColumns = `id, username, COALESCE(email, '') AS email, password_hash, created_at`

	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, NULLIF($2, ''), $3)
    RETURNING id, username, COALESCE(email, '') AS email, password_hash, created_at;`

	findUserByUsername = `SELECT id, username, COALESCE(email, '') AS email, password_hash, created_at
    FROM users
    WHERE username = $1;`

	findUserByEmail = `SELECT id, username, COALESCE(email, '') AS email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, username, COALESCE(email, '') AS email, password_hash, created_at
    FROM users
    WHERE id = $1;`

	findUserByIDForUpdate = `SELECT id, username, COALESCE(email, '') AS email, password_hash, created_at
    FROM users
    WHERE id = $1
    FOR UPDATE;`

	findAllUsers = `SELECT id, username, COALESCE(email, '') AS email, password_hash, created_at
    FROM users
    ORDER BY id;`

	deleteUserByID = `DELETE FROM users
    WHERE id = $1;`

	existsUserByID = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1);`
)

// buildUpdateUserQuery builds a partial UPDATE for the given user.
// Username and email are always written; password_hash only when the caller
// supplies a new hash, so an empty hash leaves the stored credential intact.
func buildUpdateUserQuery(user models.User) (string, []any, error) {
	builder := sq.Update("users").
		PlaceholderFormat(sq.Dollar).
		Set("username", user.Username).
		Set("email", sq.Expr("NULLIF(?, '')", user.Email)).
		Where(sq.Eq{"id": user.ID}).
		Suffix("RETURNING " + userColumns)

	if user.PasswordHash != "" {
		builder = builder.Set("password_hash", user.PasswordHash)
	}

	return builder.ToSql()
}
