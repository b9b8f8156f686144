package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/store"
	"github.com/hearbackapp/hearback/pkg/slogx"
)

// ErrPreferencesNotSet means the user has never stored preferences.
// Deliberately an error rather than default values; the client treats the
// unset state as "use the engine defaults" and needs to see the difference.
var ErrPreferencesNotSet = errors.New("preferences not set")

// PreferencesService reads and writes the per-user playback settings.
type PreferencesService struct {
	Store store.Store
}

// Update overwrites the owner's preferences wholesale. The store operation
// re-validates that the owner row still exists even though the access guard
// already resolved it.
func (s *PreferencesService) Update(ctx context.Context, owner domain.User, prefs domain.Preferences) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Users().UpdatePreferences(ctx, owner.ID, prefs)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error("failed to update preferences", slog.Int64("user_id", owner.ID), slog.Any("error", err))
		return err
	}

	return nil
}

// Get returns the owner's preferences, or ErrPreferencesNotSet when they
// have never been stored.
func (s *PreferencesService) Get(ctx context.Context, owner domain.User) (domain.Preferences, error) {
	user, err := s.Store.Users().GetUserByID(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Preferences{}, ErrUserNotFound
		}
		return domain.Preferences{}, err
	}

	if user.Preferences == nil {
		return domain.Preferences{}, ErrPreferencesNotSet
	}
	return *user.Preferences, nil
}
