package domain

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string // argon2id encoded, never serialized outward
	Preferences  *Preferences
	CreatedAt    time.Time
}

// Preferences is the per-user playback settings blob. Nil on a User means
// the user has never set preferences.
type Preferences struct {
	Speed string // e.g. "+50%"
	Voice string // engine voice identifier
}
