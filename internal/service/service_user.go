package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrolab/backoffice/internal/config"
	"github.com/agrolab/backoffice/internal/logger"
	"github.com/agrolab/backoffice/internal/store"
	"github.com/agrolab/backoffice/internal/utils"
	"github.com/agrolab/backoffice/internal/validators"
	"github.com/agrolab/backoffice/models"
)

// userService is the concrete implementation of UserService.
// It orchestrates credential verification, password lifecycle, and token
// issuance over a UserRepository, recording activity in a StatsService.
type userService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// stats records visits and active sessions on successful logins.
	stats StatsService

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the work factor passed to the password hasher.
	bcryptCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewUserService constructs a UserService wired to the given UserRepository
// and StatsService, populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state besides the
// injected StatsService is read-only after construction.
func NewUserService(userRepository store.UserRepository, stats StatsService, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		stats:          stats,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// Login authenticates an existing user.
//
// A missing account and a wrong password both surface as
// [ErrInvalidCredentials]; callers cannot tell the two apart, which keeps the
// endpoint from leaking which usernames exist.
//
// On success the visit counter is incremented, the active-session entry is
// refreshed, and a signed token is issued for the account.
func (s *userService) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("username", username).Msg("login attempt for unknown user")
			return models.LoginResponse{}, ErrInvalidCredentials
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.LoginResponse{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		log.Warn().Str("username", username).Msg("login attempt with wrong password")
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	s.stats.RecordVisit()
	s.stats.RecordActive(user.Username)

	token, err := utils.GenerateJWTToken(s.tokenIssuer, user.Username, s.tokenDuration, s.tokenSignKey)
	if err != nil {
		log.Err(err).Str("username", username).Msg("token creation failed")
		return models.LoginResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.LoginResponse{
		Token:    token.SignedString,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Register creates a new self-service account.
//
// The password must satisfy the policy; the username must be free. The
// existence pre-check gives the common path a precise error, and the unique
// constraint in the store closes the race between concurrent registrations.
func (s *userService) Register(ctx context.Context, username, password string) error {
	log := logger.FromContext(ctx)

	if !validators.IsValidPassword(password) {
		return ErrPasswordPolicyViolation
	}

	if _, err := s.userRepository.FindUserByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return fmt.Errorf("user search by username failed: %w", err)
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if _, err := s.userRepository.CreateUser(ctx, models.User{Username: username, PasswordHash: hash}); err != nil {
		log.Err(err).Str("username", username).Msg("user creation ended with error")
		return mapStoreError(err)
	}

	return nil
}

// CreateUser is the administrative creation path. Unlike Register it accepts
// a full user record including email, enforcing both uniqueness constraints
// and the password policy before hashing and persisting.
func (s *userService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if _, err := s.userRepository.FindUserByUsername(ctx, user.Username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if user.Email != "" {
		if _, err := s.userRepository.FindUserByEmail(ctx, user.Email); err == nil {
			return models.User{}, ErrEmailTaken
		} else if !errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, fmt.Errorf("user search by email failed: %w", err)
		}
	}

	if !validators.IsValidPassword(user.Password) {
		return models.User{}, ErrPasswordPolicyViolation
	}

	hash, err := utils.HashPassword(user.Password, s.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = hash
	user.Password = ""

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, mapStoreError(err)
	}

	return created, nil
}

// VerifyEmail reports whether the stored email for username matches email
// exactly (case-sensitive). Unknown usernames fail with [ErrUserNotFound];
// this path intentionally discloses account existence, unlike Login, because
// the reset flow's front end distinguishes the two outcomes.
func (s *userService) VerifyEmail(ctx context.Context, username, email string) (bool, error) {
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return false, mapStoreError(err)
	}

	return user.Email == email, nil
}

// ResetPassword sets a new password for the account identified by username,
// after verifying the stored email matches the supplied one. No current
// password is required; the username/email pair is the whole identity proof.
// All fields besides the credential are left untouched.
func (s *userService) ResetPassword(ctx context.Context, username, email, newPassword string) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return mapStoreError(err)
	}

	if user.Email != email {
		log.Warn().Str("username", username).Msg("password reset with mismatched email")
		return ErrEmailMismatch
	}

	if !validators.IsValidPassword(newPassword) {
		return ErrPasswordPolicyViolation
	}

	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = hash

	if _, err := s.userRepository.UpdateUser(ctx, user); err != nil {
		log.Err(err).Str("username", username).Msg("password reset persistence failed")
		return mapStoreError(err)
	}

	return nil
}

// UpdateUser rewrites an existing account.
//
// Collision checks run only for fields that actually change. An empty
// Password keeps the stored hash; a non-empty one must pass the policy and
// replaces it.
func (s *userService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	existing, err := s.userRepository.FindUserByID(ctx, user.ID)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}

	if user.Username != existing.Username {
		if _, err := s.userRepository.FindUserByUsername(ctx, user.Username); err == nil {
			return models.User{}, ErrUsernameTaken
		} else if !errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, fmt.Errorf("user search by username failed: %w", err)
		}
	}

	if user.Email != existing.Email && user.Email != "" {
		if _, err := s.userRepository.FindUserByEmail(ctx, user.Email); err == nil {
			return models.User{}, ErrEmailTaken
		} else if !errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, fmt.Errorf("user search by email failed: %w", err)
		}
	}

	if user.Password != "" {
		if !validators.IsValidPassword(user.Password) {
			return models.User{}, ErrPasswordPolicyViolation
		}
		hash, err := utils.HashPassword(user.Password, s.bcryptCost)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		user.PasswordHash = hash
		user.Password = ""
	} else {
		// empty hash tells the repository to retain the stored credential
		user.PasswordHash = ""
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", user.ID).Msg("user update ended with error")
		return models.User{}, mapStoreError(err)
	}

	return updated, nil
}

// DeleteUser irreversibly removes the account with the given identifier.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	exists, err := s.userRepository.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("user existence check failed: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		return mapStoreError(err)
	}

	return nil
}

// Logout removes the active-session entry for username. Tokens stay valid
// until expiry; only the activity tracker forgets the session.
func (s *userService) Logout(ctx context.Context, username string) {
	s.stats.RemoveActive(username)
}

// FindByUsername passes the lookup through to the store, mapping an empty
// result to [ErrUserNotFound].
func (s *userService) FindByUsername(ctx context.Context, username string) (models.User, error) {
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}

	return user, nil
}

// GetAllUsers returns every account in the store.
func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.FindAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

// GetUserByID returns the account with the given id. Absence is not an
// error: the second return value reports whether the account exists, since
// the calling boundary maps absence to its own not-found response.
func (s *userService) GetUserByID(ctx context.Context, id int64) (models.User, bool, error) {
	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, false, nil
		}
		return models.User{}, false, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, true, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// [ErrTokenIsExpiredOrInvalid] so that callers do not need to inspect
// low-level JWT errors.
func (s *userService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// mapStoreError converts repository sentinels into their domain equivalents,
// wrapping everything else.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return ErrUsernameTaken
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrEmailTaken
	default:
		return fmt.Errorf("storage operation failed: %w", err)
	}
}
