package account

import (
	"context"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

type SwitchTeamInput struct {
	SessionToken string
	UserID       int64
	TeamID       int64
}

type SwitchTeamResult struct{}

// SwitchTeam moves the session to another of the user's teams and persists
// it as the account default. A session's active team is only ever one the
// user belongs to; requests for foreign teams are rejected and recorded.
type SwitchTeam struct {
	accounts  ports.AccountRepository
	teams     ports.TeamRepository
	sessions  ports.SessionStore
	telemetry ports.Telemetry
}

func NewSwitchTeam(accounts ports.AccountRepository, teams ports.TeamRepository, sessions ports.SessionStore, telemetry ports.Telemetry) *SwitchTeam {
	return &SwitchTeam{accounts: accounts, teams: teams, sessions: sessions, telemetry: telemetry}
}

func (uc *SwitchTeam) Execute(ctx context.Context, input SwitchTeamInput) (*SwitchTeamResult, error) {
	member, err := uc.teams.IsMember(ctx, input.UserID, input.TeamID)
	if err != nil {
		return nil, err
	}
	if !member {
		uc.telemetry.RecordEvent("team.access_violation")
		return nil, domerrors.ErrNotTeamMember
	}

	if err := uc.sessions.SetActiveTeam(ctx, input.SessionToken, input.TeamID); err != nil {
		return nil, err
	}
	if err := uc.accounts.SetDefaultTeam(ctx, input.UserID, input.TeamID); err != nil {
		return nil, err
	}
	return &SwitchTeamResult{}, nil
}
