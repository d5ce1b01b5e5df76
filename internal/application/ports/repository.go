package ports

import (
	"context"
	"time"

	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
)

// AccountRepository defines persistence for user accounts and password
// reset requests. GetByEmail returns (nil, nil) when no account exists.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	// Create inserts the account and provisions its personal default team
	// in one transaction, returning a seed for the new session.
	Create(ctx context.Context, account *domain.UserAccount) (*domain.SessionSeed, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	TeamsOf(ctx context.Context, userID int64) ([]domain.Team, error)
	SetDefaultTeam(ctx context.Context, userID, teamID int64) error
	CreateResetRequest(ctx context.Context, userID int64, codeHash string, expiresAt time.Time) error
	// GetResetRequest returns (nil, nil) for unknown, expired, or used codes.
	GetResetRequest(ctx context.Context, codeHash string) (*domain.PasswordResetRequest, error)
	// MarkResetUsed atomically consumes a live request. It returns
	// ErrResetNotFound when the code is unknown, expired, or already
	// consumed, so concurrent submits get exactly one winner.
	MarkResetUsed(ctx context.Context, codeHash string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash, salt string) error
}

// TeamRepository answers membership questions.
type TeamRepository interface {
	IsMember(ctx context.Context, userID, teamID int64) (bool, error)
}

// DashboardReader assembles the data behind the dashboard view.
type DashboardReader interface {
	ProjectsOf(ctx context.Context, teamID int64) ([]domain.Project, error)
	RecentIssues(ctx context.Context, teamID int64, limit int) ([]domain.Issue, error)
	IssuesAssignedTo(ctx context.Context, teamID, userID int64, limit int) ([]domain.Issue, error)
}
