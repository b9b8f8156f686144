package sqlite

import (
	"context"
	"time"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/store"
)

type entriesRepo struct {
	q querier
}

func (r *entriesRepo) CreateEntry(ctx context.Context, ownerID int64, title, content string) (domain.Entry, error) {
	now := time.Now().UTC()

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO entries (user_id, title, content, progress, created_at)
		 VALUES (?, ?, ?, 0, ?)`,
		ownerID, title, content, now,
	)
	if err != nil {
		return domain.Entry{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Entry{}, err
	}

	return domain.Entry{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		Content:   content,
		Progress:  0,
		CreatedAt: now,
	}, nil
}

func (r *entriesRepo) GetEntryByOwner(ctx context.Context, ownerID, entryID int64) (domain.Entry, error) {
	var e domain.Entry

	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, progress, created_at
		 FROM entries WHERE id = ? AND user_id = ?`,
		entryID, ownerID,
	).Scan(&e.ID, &e.OwnerID, &e.Title, &e.Content, &e.Progress, &e.CreatedAt)
	if err != nil {
		return domain.Entry{}, mapNotFound(err)
	}

	return e, nil
}

func (r *entriesRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.EntrySummary, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, title, created_at FROM entries WHERE user_id = ? ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []domain.EntrySummary{}
	for rows.Next() {
		var s domain.EntrySummary
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// UpdateProgress is a single conditional write: the ownership check and the
// update happen in one statement, so a concurrent delete can't slip between
// them.
func (r *entriesRepo) UpdateProgress(ctx context.Context, ownerID, entryID, progress int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE entries SET progress = ? WHERE id = ? AND user_id = ?`,
		progress, entryID, ownerID,
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

func (r *entriesRepo) DeleteByOwner(ctx context.Context, ownerID, entryID int64) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM entries WHERE id = ? AND user_id = ?`,
		entryID, ownerID,
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
