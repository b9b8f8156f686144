package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/store"
	"github.com/hearbackapp/hearback/pkg/slogx"
)

const (
	maxTitleLength   = 1200
	minContentLength = 3
	maxContentLength = 10000

	derivedTitleWords = 3
)

var (
	ErrEntryNotFound = errors.New("entry not found")

	ErrContentTooShort = errors.New("content must be at least 3 characters")
	ErrContentTooLong  = errors.New("content must be at most 10000 characters")
	ErrTitleTooLong    = errors.New("title must be at most 1200 characters")
)

// EntryService owns the text entries. Every operation takes the
// authenticated owner and is scoped to their rows; an entry owned by
// someone else is indistinguishable from one that doesn't exist.
type EntryService struct {
	Store store.Store
}

// Create validates and persists a new entry. An empty or whitespace title
// is derived from the first three whitespace-separated words of the content.
func (s *EntryService) Create(ctx context.Context, owner domain.User, title, content string) (domain.Entry, error) {
	log := slogx.FromContext(ctx)

	if len(content) < minContentLength {
		return domain.Entry{}, ErrContentTooShort
	}
	if len(content) > maxContentLength {
		return domain.Entry{}, ErrContentTooLong
	}
	if len(title) > maxTitleLength {
		return domain.Entry{}, ErrTitleTooLong
	}

	if strings.TrimSpace(title) == "" {
		title = deriveTitle(content)
	}

	var entry domain.Entry
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		entry, err = tx.Entries().CreateEntry(ctx, owner.ID, title, content)
		return err
	})
	if err != nil {
		log.Error("failed to create entry", slog.Int64("owner_id", owner.ID), slog.Any("error", err))
		return domain.Entry{}, err
	}

	log.Info("entry created", slog.Int64("entry_id", entry.ID), slog.Int64("owner_id", owner.ID))
	return entry, nil
}

// GetByID fetches an owned entry.
func (s *EntryService) GetByID(ctx context.Context, owner domain.User, entryID int64) (domain.Entry, error) {
	entry, err := s.Store.Entries().GetEntryByOwner(ctx, owner.ID, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Entry{}, ErrEntryNotFound
		}
		return domain.Entry{}, err
	}
	return entry, nil
}

// ListForOwner returns the owner's entries in insertion order. No entries
// means an empty slice, not an error.
func (s *EntryService) ListForOwner(ctx context.Context, owner domain.User) ([]domain.EntrySummary, error) {
	return s.Store.Entries().ListByOwner(ctx, owner.ID)
}

// UpdateProgress atomically sets the reading progress of an owned entry and
// returns the entry id.
func (s *EntryService) UpdateProgress(ctx context.Context, owner domain.User, entryID, progress int64) (int64, error) {
	err := s.Store.Entries().UpdateProgress(ctx, owner.ID, entryID, progress)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrEntryNotFound
		}
		return 0, err
	}
	return entryID, nil
}

// Delete removes an owned entry. Zero rows deleted means the entry didn't
// exist for this owner.
func (s *EntryService) Delete(ctx context.Context, owner domain.User, entryID int64) error {
	err := s.Store.Entries().DeleteByOwner(ctx, owner.ID, entryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

// deriveTitle joins the first three whitespace-separated tokens of content.
func deriveTitle(content string) string {
	words := strings.Fields(content)
	if len(words) > derivedTitleWords {
		words = words[:derivedTitleWords]
	}
	return strings.Join(words, " ")
}
