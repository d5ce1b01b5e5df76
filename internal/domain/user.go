package domain

import "time"

// UserAccount is an identity record. Password hashes are Argon2id computed
// over the per-account Salt; the raw password never leaves the account layer.
type UserAccount struct {
	ID            int64
	Email         string
	Name          string
	PasswordHash  string
	Salt          string
	DefaultTeamID *int64
	LastLoginAt   *time.Time
	CreatedAt     time.Time
}

// SessionSeed is what account creation returns: enough to establish a
// session for the new user without a second lookup.
type SessionSeed struct {
	UserID int64
	TeamID int64
	Email  string
}

// Session is the server-side state behind a session cookie. ActiveTeamID is
// only ever a team the user belongs to.
type Session struct {
	UserID       int64     `json:"user_id"`
	ActiveTeamID int64     `json:"team_id"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// PasswordResetRequest is an ephemeral record keyed by the SHA-256 of an
// activation code. Single use: UsedAt is set when the reset completes.
type PasswordResetRequest struct {
	ID        int64
	UserID    int64
	CodeHash  string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
