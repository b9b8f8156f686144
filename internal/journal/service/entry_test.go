package service

import (
	"context"
	"strings"
	"testing"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/store"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	user, err := st.Users().CreateUser(context.Background(), username, "unused-hash")
	require.NoError(t, err)
	return user
}

func TestCreateEntryValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &EntryService{Store: st}
	owner := createTestUser(t, st, "alice")

	t.Run("rejects content shorter than three characters", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, "Title", "ab")
		require.ErrorIs(t, err, ErrContentTooShort)
	})

	t.Run("rejects content over the limit", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, "Title", strings.Repeat("x", 10001))
		require.ErrorIs(t, err, ErrContentTooLong)
	})

	t.Run("rejects title over the limit", func(t *testing.T) {
		_, err := svc.Create(ctx, owner, strings.Repeat("t", 1201), "valid content")
		require.ErrorIs(t, err, ErrTitleTooLong)
	})

	t.Run("accepts boundary lengths", func(t *testing.T) {
		entry, err := svc.Create(ctx, owner, strings.Repeat("t", 1200), strings.Repeat("x", 10000))
		require.NoError(t, err)
		require.NotZero(t, entry.ID)
		require.Zero(t, entry.Progress)
	})
}

func TestCreateEntryDerivesTitle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &EntryService{Store: st}
	owner := createTestUser(t, st, "alice")

	t.Run("first three words of content", func(t *testing.T) {
		entry, err := svc.Create(ctx, owner, "", "Testing things out with a longer body")
		require.NoError(t, err)
		require.Equal(t, "Testing things out", entry.Title)
	})

	t.Run("whitespace-only title is treated as empty", func(t *testing.T) {
		entry, err := svc.Create(ctx, owner, "   \t ", "Second entry body text")
		require.NoError(t, err)
		require.Equal(t, "Second entry body", entry.Title)
	})

	t.Run("exactly three words keeps the whole content", func(t *testing.T) {
		entry, err := svc.Create(ctx, owner, "", "Testing things out")
		require.NoError(t, err)
		require.Equal(t, "Testing things out", entry.Title)
	})

	t.Run("short content uses every word", func(t *testing.T) {
		entry, err := svc.Create(ctx, owner, "", "two words")
		require.NoError(t, err)
		require.Equal(t, "two words", entry.Title)
	})

	t.Run("explicit title wins", func(t *testing.T) {
		entry, err := svc.Create(ctx, owner, "My Title", "content that would derive differently")
		require.NoError(t, err)
		require.Equal(t, "My Title", entry.Title)
	})
}

func TestEntryOwnerScoping(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &EntryService{Store: st}

	alice := createTestUser(t, st, "alice")
	mallory := createTestUser(t, st, "mallory")

	entry, err := svc.Create(ctx, alice, "Alice's entry", "some content here")
	require.NoError(t, err)

	t.Run("foreign get looks like absence", func(t *testing.T) {
		_, err := svc.GetByID(ctx, mallory, entry.ID)
		require.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("foreign progress update looks like absence", func(t *testing.T) {
		_, err := svc.UpdateProgress(ctx, mallory, entry.ID, 50)
		require.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("foreign delete looks like absence and leaves the row", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, mallory, entry.ID), ErrEntryNotFound)

		kept, err := svc.GetByID(ctx, alice, entry.ID)
		require.NoError(t, err)
		require.Equal(t, entry.ID, kept.ID)
	})

	t.Run("listing only sees own rows", func(t *testing.T) {
		own, err := svc.ListForOwner(ctx, alice)
		require.NoError(t, err)
		require.Len(t, own, 1)

		foreign, err := svc.ListForOwner(ctx, mallory)
		require.NoError(t, err)
		require.Empty(t, foreign)
		require.NotNil(t, foreign)
	})
}

func TestUpdateProgress(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &EntryService{Store: st}
	owner := createTestUser(t, st, "alice")

	entry, err := svc.Create(ctx, owner, "Title", "some content")
	require.NoError(t, err)

	id, err := svc.UpdateProgress(ctx, owner, entry.ID, 1234)
	require.NoError(t, err)
	require.Equal(t, entry.ID, id)

	updated, err := svc.GetByID(ctx, owner, entry.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1234, updated.Progress)

	_, err = svc.UpdateProgress(ctx, owner, entry.ID+100, 1)
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &EntryService{Store: st}
	owner := createTestUser(t, st, "alice")

	entry, err := svc.Create(ctx, owner, "Title", "some content")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, entry.ID))

	_, err = svc.GetByID(ctx, owner, entry.ID)
	require.ErrorIs(t, err, ErrEntryNotFound)

	// Second delete of the same id reports absence.
	require.ErrorIs(t, svc.Delete(ctx, owner, entry.ID), ErrEntryNotFound)
}

func TestListForOwnerInsertionOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := newTestStore(t)
	svc := &EntryService{Store: st}
	owner := createTestUser(t, st, "alice")

	titles := []string{"first entry", "second entry", "third entry"}
	for _, title := range titles {
		_, err := svc.Create(ctx, owner, title, "content body")
		require.NoError(t, err)
	}

	list, err := svc.ListForOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, len(titles))
	for i, summary := range list {
		require.Equal(t, titles[i], summary.Title)
	}
}
