package domain

import "time"

// Project belongs to a team and contains issues.
type Project struct {
	ID        int64     `json:"id"`
	TeamID    int64     `json:"team_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Issue is a work item inside a project.
type Issue struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	Title      string    `json:"title"`
	Status     string    `json:"status"`
	AssignedTo *int64    `json:"assigned_to,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
