package account

import (
	"context"
	"net/url"
	"time"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

type JoinInput struct {
	Email    string
	Name     string
	Password string
	// ReturnURL carries a team-join token when signup came from an invite link.
	ReturnURL string
}

type JoinResult struct {
	Token      string
	Seed       *domain.SessionSeed
	RedirectTo string
}

// Join creates an account (with its personal default team) and signs the
// new user in. Signups arriving through an invite link are redirected into
// the join-team flow with the invite token intact.
type Join struct {
	accounts  ports.AccountRepository
	hasher    ports.PasswordHasher
	sessions  ports.SessionStore
	telemetry ports.Telemetry
}

func NewJoin(accounts ports.AccountRepository, hasher ports.PasswordHasher, sessions ports.SessionStore, telemetry ports.Telemetry) *Join {
	return &Join{accounts: accounts, hasher: hasher, sessions: sessions, telemetry: telemetry}
}

func (uc *Join) Execute(ctx context.Context, input JoinInput) (*JoinResult, error) {
	if input.ReturnURL != "" {
		uc.telemetry.RecordEvent("account.join_via_invite")
	}

	existing, err := uc.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrAccountExists
	}

	salt, err := uc.hasher.NewSalt()
	if err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(input.Password, salt)
	if err != nil {
		return nil, err
	}

	seed, err := uc.accounts.Create(ctx, &domain.UserAccount{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.sessions.Establish(ctx, *seed)
	if err != nil {
		return nil, err
	}

	redirect := "/account/created"
	if input.ReturnURL != "" {
		redirect = "/users/join-team?token=" + url.QueryEscape(input.ReturnURL)
	}
	return &JoinResult{Token: token, Seed: seed, RedirectTo: redirect}, nil
}
