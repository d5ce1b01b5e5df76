package account

import (
	"context"
	"fmt"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token      string
	User       *domain.UserAccount
	RedirectTo string
}

// Login verifies credentials and establishes a session. Unknown email and
// wrong password both fail with the same ErrInvalidCredentials so the
// response cannot be used to enumerate accounts.
type Login struct {
	accounts  ports.AccountRepository
	hasher    ports.PasswordHasher
	sessions  ports.SessionStore
	telemetry ports.Telemetry
}

func NewLogin(accounts ports.AccountRepository, hasher ports.PasswordHasher, sessions ports.SessionStore, telemetry ports.Telemetry) *Login {
	return &Login{accounts: accounts, hasher: hasher, sessions: sessions, telemetry: telemetry}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	uc.telemetry.RecordEvent("account.login_attempt")

	user, err := uc.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Compare(user.PasswordHash, input.Password, user.Salt) {
		return nil, domerrors.ErrInvalidCredentials
	}

	if err := uc.accounts.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	teamID, err := uc.resolveTeam(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := uc.sessions.Establish(ctx, domain.SessionSeed{
		UserID: user.ID,
		TeamID: teamID,
		Email:  user.Email,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user, RedirectTo: "/dashboard"}, nil
}

// resolveTeam returns the account's default team, repairing accounts that
// lost theirs by adopting the first team they belong to. Such accounts
// should not exist, so the repair is recorded as an event.
func (uc *Login) resolveTeam(ctx context.Context, user *domain.UserAccount) (int64, error) {
	if user.DefaultTeamID != nil {
		return *user.DefaultTeamID, nil
	}
	uc.telemetry.RecordEvent("account.login_no_default_team")
	teams, err := uc.accounts.TeamsOf(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	if len(teams) == 0 {
		return 0, fmt.Errorf("resolve team for user %d: %w", user.ID, domerrors.ErrNoTeam)
	}
	teamID := teams[0].ID
	if err := uc.accounts.SetDefaultTeam(ctx, user.ID, teamID); err != nil {
		return 0, err
	}
	return teamID, nil
}
