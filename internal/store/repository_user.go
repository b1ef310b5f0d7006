package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agrolab/backoffice/internal/logger"
	"github.com/agrolab/backoffice/models"
	"github.com/jackc/pgerrcode"
)

// Names of the unique constraints on the users table. The repository uses
// them to decide which uniqueness sentinel a 23505 error maps to.
const (
	usernameUniqueConstraint = "users_username_key"
	emailUniqueConstraint    = "users_email_key"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, update, and deletion against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (ID, CreatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - unique_violation (23505) on the username constraint → [ErrUsernameAlreadyExists].
//   - unique_violation (23505) on the email constraint → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.Email, user.PasswordHash)

	var created models.User
	if err := row.Scan(&created.ID, &created.Username, &created.Email, &created.PasswordHash, &created.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: insert failed")
		return models.User{}, mapUniqueViolation(err)
	}

	return created, nil
}

// FindUserByUsername retrieves the user record with the given username.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, findUserByUsername, username, "*userRepository.FindUserByUsername")
}

// FindUserByEmail retrieves the user record with the given email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, findUserByEmail, email, "*userRepository.FindUserByEmail")
}

// FindUserByID retrieves the user record with the given identifier.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, findUserByID, id, "*userRepository.FindUserByID")
}

// FindAllUsers returns every user record ordered by identifier.
func (r *userRepository) FindAllUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findAllUsers)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindAllUsers").Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.FindAllUsers").Msg("error: scanning error")
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return users, nil
}

// UpdateUser rewrites an existing user record inside a single transaction.
//
// The row is locked with SELECT ... FOR UPDATE first so that the
// read-then-write sequence cannot interleave with a concurrent update of the
// same account. An empty PasswordHash in the input leaves the stored hash
// untouched; see [buildUpdateUserQuery].
//
// Error handling:
//   - No row for user.ID → [ErrNoUserWasFound].
//   - unique_violation on username/email → matching uniqueness sentinel.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var updated models.User
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		var existing models.User
		row := tx.QueryRowContext(ctx, findUserByIDForUpdate, user.ID)
		if err := row.Scan(&existing.ID, &existing.Username, &existing.Email, &existing.PasswordHash, &existing.CreatedAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoUserWasFound
			}
			return fmt.Errorf("unexpected DB error: %w", err)
		}

		query, args, err := buildUpdateUserQuery(user)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		row = tx.QueryRowContext(ctx, query, args...)
		if err := row.Scan(&updated.ID, &updated.Username, &updated.Email, &updated.PasswordHash, &updated.CreatedAt); err != nil {
			return mapUniqueViolation(err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("id", user.ID).Msg("error: update failed")
		return models.User{}, err
	}

	return updated, nil
}

// DeleteUser removes the user record with the given identifier.
//
// Error handling:
//   - Zero affected rows → [ErrNoUserWasFound].
//   - Any driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUserByID, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("id", id).Msg("error: delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// ExistsByID reports whether a user record with the given identifier exists.
func (r *userRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, existsUserByID, id).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*userRepository.ExistsByID").Int64("id", id).Msg("error: exists check failed")
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}

	return exists, nil
}

// findOne runs a single-row user query and maps the empty result set to
// [ErrNoUserWasFound].
func (r *userRepository) findOne(ctx context.Context, query string, arg any, funcName string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, query, arg)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// mapUniqueViolation converts a PostgreSQL unique_violation into the matching
// domain sentinel based on the violated constraint, passing every other error
// through wrapped.
func mapUniqueViolation(err error) error {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	switch postgresConstraint(err) {
	case usernameUniqueConstraint:
		return ErrUsernameAlreadyExists
	case emailUniqueConstraint:
		return ErrEmailAlreadyExists
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}
