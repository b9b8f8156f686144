package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/store"
	"github.com/hearbackapp/hearback/pkg/cryptox"
	"github.com/hearbackapp/hearback/pkg/slogx"
)

const minPasswordLength = 4

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
)

// UserService is the credential store: it owns registration and login.
// Password hashes never leave this layer except embedded in domain.User,
// which the HTTP boundary never serializes.
type UserService struct {
	Store store.Store
}

// Register creates a new user with a hashed password. The username check is
// optimistic; a concurrent insert between check and create still surfaces as
// ErrUsernameTaken via the store's unique constraint.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, ErrUsernameRequired
	}
	if len(password) < minPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err == nil {
		return domain.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err = tx.Users().CreateUser(ctx, username, hash)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race against another registration.
			return domain.User{}, ErrUsernameTaken
		}
		log.Error("failed to create user", slog.String("username", username), slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// VerifyLogin checks the username/password pair. Unknown usernames and
// wrong passwords produce the identical error so the endpoint cannot be
// used for username enumeration.
func (s *UserService) VerifyLogin(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", slog.Any("error", err))
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID fetches a user by id, mapping absence to ErrUserNotFound.
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetUserByUsername fetches a user by username, mapping absence to
// ErrUserNotFound.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
