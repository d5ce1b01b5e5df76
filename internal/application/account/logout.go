package account

import (
	"context"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
)

type LogoutResult struct {
	RedirectTo string
}

// Logout clears the session unconditionally. Unknown tokens are not an
// error, so repeating a logout is harmless.
type Logout struct {
	sessions ports.SessionStore
}

func NewLogout(sessions ports.SessionStore) *Logout {
	return &Logout{sessions: sessions}
}

func (uc *Logout) Execute(ctx context.Context, token string) (*LogoutResult, error) {
	if token != "" {
		if err := uc.sessions.Clear(ctx, token); err != nil {
			return nil, err
		}
	}
	return &LogoutResult{RedirectTo: "/account/login"}, nil
}
