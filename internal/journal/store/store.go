package store

import (
	"context"
	"errors"

	"github.com/hearbackapp/hearback/internal/journal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Entries() Entries

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to handle multi-step writes.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user and returns it with the assigned id.
	// A username collision surfaces as ErrAlreadyExists.
	CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UpdatePreferences overwrites the user's preferences blob wholesale.
	// ErrNotFound if the user row no longer exists.
	UpdatePreferences(ctx context.Context, userID int64, prefs domain.Preferences) error

	// DeleteUser removes a user; entries cascade per schema.
	DeleteUser(ctx context.Context, userID int64) error
}

type Entries interface {
	// CreateEntry inserts a new entry and returns it with the assigned id.
	CreateEntry(ctx context.Context, ownerID int64, title, content string) (domain.Entry, error)

	// GetEntryByOwner returns the entry only when it is owned by ownerID.
	// A foreign-owned or absent entry is ErrNotFound either way.
	GetEntryByOwner(ctx context.Context, ownerID, entryID int64) (domain.Entry, error)

	// ListByOwner returns the owner's entries in insertion order. An owner
	// with no entries gets an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.EntrySummary, error)

	// UpdateProgress sets progress in a single conditional write scoped by
	// both entry id and owner id. ErrNotFound when nothing matched.
	UpdateProgress(ctx context.Context, ownerID, entryID, progress int64) error

	// DeleteByOwner deletes in a single statement scoped by both entry id
	// and owner id. ErrNotFound when the delete affected zero rows.
	DeleteByOwner(ctx context.Context, ownerID, entryID int64) error
}
