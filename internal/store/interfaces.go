package store

import (
	"context"

	"github.com/agrolab/backoffice/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_store.go -package=mock

// UserRepository is the persistence boundary for user accounts.
//
// Implementations must enforce the uniqueness of username and email at the
// storage level so that concurrent check-then-write sequences cannot produce
// duplicates; violations surface as [ErrUsernameAlreadyExists] and
// [ErrEmailAlreadyExists]. Singular lookups that miss return
// [ErrNoUserWasFound].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
