package ports

import (
	"context"

	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
)

// SessionStore holds server-side session state keyed by an opaque token
// delivered to the browser as a cookie. Callers always pass the token
// explicitly; there is no ambient current-session state.
type SessionStore interface {
	// Establish creates a session and returns its token.
	Establish(ctx context.Context, seed domain.SessionSeed) (string, error)
	// Get returns domerrors.ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	SetActiveTeam(ctx context.Context, token string, teamID int64) error
	// Clear is idempotent; clearing an unknown token is not an error.
	Clear(ctx context.Context, token string) error
}
