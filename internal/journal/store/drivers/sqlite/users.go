package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/store"
)

type usersRepo struct {
	q querier
}

func (r *usersRepo) CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error) {
	now := time.Now().UTC()

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, now,
	)
	if err != nil {
		return domain.User{}, mapConflict(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, username, password_hash, pref_speed, pref_voice, created_at
		 FROM users WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, username, password_hash, pref_speed, pref_voice, created_at
		 FROM users WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (r *usersRepo) UpdatePreferences(ctx context.Context, userID int64, prefs domain.Preferences) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET pref_speed = ?, pref_voice = ? WHERE id = ?`,
		prefs.Speed, prefs.Voice, userID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		prefSpeed sql.NullString
		prefVoice sql.NullString
	)

	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &prefSpeed, &prefVoice, &u.CreatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	// Both columns are written together, so one valid column means the
	// preferences blob has been set.
	if prefSpeed.Valid || prefVoice.Valid {
		u.Preferences = &domain.Preferences{
			Speed: prefSpeed.String,
			Voice: prefVoice.String,
		}
	}

	return u, nil
}
