package domain

import "time"

// Team groups users; every user belongs to at least one (their personal
// team, created at signup).
type Team struct {
	ID        int64
	Name      string
	CreatedBy int64
	CreatedAt time.Time
}

// TeamMember is the membership relation between users and teams.
type TeamMember struct {
	TeamID   int64
	UserID   int64
	JoinedAt time.Time
}
