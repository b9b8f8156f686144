package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/store"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestCreateUserConflict(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)

	_, err := st.Users().CreateUser(ctx, "alice", "hash-a")
	require.NoError(t, err)

	_, err = st.Users().CreateUser(ctx, "alice", "hash-b")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestDeleteUserCascadesEntries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)

	user, err := st.Users().CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	entry, err := st.Entries().CreateEntry(ctx, user.ID, "Title", "content body")
	require.NoError(t, err)

	require.NoError(t, st.Users().DeleteUser(ctx, user.ID))

	_, err = st.Entries().GetEntryByOwner(ctx, user.ID, entry.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestPreferencesNullUntilSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)

	user, err := st.Users().CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	require.Nil(t, user.Preferences)

	require.NoError(t, st.Users().UpdatePreferences(ctx, user.ID, domain.Preferences{
		Speed: "+10%",
		Voice: "en-GB-SoniaNeural",
	}))

	reloaded, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Preferences)
	require.Equal(t, "+10%", reloaded.Preferences.Speed)
	require.Equal(t, "en-GB-SoniaNeural", reloaded.Preferences.Voice)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)

	sentinel := errors.New("abort")
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().CreateUser(ctx, "alice", "hash"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = st.Users().GetUserByUsername(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateProgressIsOwnerConditional(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newStore(t)

	alice, err := st.Users().CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	mallory, err := st.Users().CreateUser(ctx, "mallory", "hash")
	require.NoError(t, err)

	entry, err := st.Entries().CreateEntry(ctx, alice.ID, "Title", "content body")
	require.NoError(t, err)

	err = st.Entries().UpdateProgress(ctx, mallory.ID, entry.ID, 99)
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.Entries().UpdateProgress(ctx, alice.ID, entry.ID, 99))

	reloaded, err := st.Entries().GetEntryByOwner(ctx, alice.ID, entry.ID)
	require.NoError(t, err)
	require.EqualValues(t, 99, reloaded.Progress)
}
