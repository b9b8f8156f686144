package domain

import "time"

type Entry struct {
	ID        int64
	OwnerID   int64 // foreign key to users, cascade on owner deletion
	Title     string
	Content   string
	Progress  int64 // reading position, meaning left to the caller
	CreatedAt time.Time
}

// EntrySummary is the listing projection: no content payload.
type EntrySummary struct {
	ID        int64
	Title     string
	CreatedAt time.Time
}
