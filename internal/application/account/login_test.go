package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	teamID := int64(7)
	repo.addUser("ann@example.com", "hunter22", &teamID)
	sessions := newFakeSessionStore()
	tel := &fakeTelemetry{}
	uc := NewLogin(repo, &fakeHasher{}, sessions, tel)

	res, err := uc.Execute(context.Background(), LoginInput{Email: "ann@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", res.RedirectTo)
	assert.NotEmpty(t, res.Token)

	sess, err := sessions.Get(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.ActiveTeamID)
	assert.Equal(t, "ann@example.com", sess.Email)
	assert.Equal(t, 1, repo.called("UpdateLastLogin"))
	assert.True(t, tel.has("account.login_attempt"))
}

func TestLogin_NoDefaultTeamAdoptsFirstMembership(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	u := repo.addUser("bob@example.com", "pw", nil,
		domain.Team{ID: 31, Name: "first"},
		domain.Team{ID: 32, Name: "second"},
	)
	sessions := newFakeSessionStore()
	tel := &fakeTelemetry{}
	uc := NewLogin(repo, &fakeHasher{}, sessions, tel)

	res, err := uc.Execute(context.Background(), LoginInput{Email: "bob@example.com", Password: "pw"})
	require.NoError(t, err)

	sess, err := sessions.Get(context.Background(), res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(31), sess.ActiveTeamID)
	require.NotNil(t, u.DefaultTeamID)
	assert.Equal(t, int64(31), *u.DefaultTeamID, "adopted team must be persisted")
	assert.Equal(t, 1, repo.called("SetDefaultTeam"))
	assert.True(t, tel.has("account.login_no_default_team"))
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLogin_GenericErrorDoesNotLeakAccountExistence(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	teamID := int64(1)
	repo.addUser("known@example.com", "correct", &teamID)
	uc := NewLogin(repo, &fakeHasher{}, newFakeSessionStore(), &fakeTelemetry{})

	_, errWrongPassword := uc.Execute(context.Background(), LoginInput{Email: "known@example.com", Password: "wrong"})
	_, errUnknownEmail := uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "wrong"})

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownEmail)
	assert.ErrorIs(t, errWrongPassword, domerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, domerrors.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestLogin_WrongPasswordDoesNotTouchAccount(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	teamID := int64(1)
	repo.addUser("ann@example.com", "right", &teamID)
	uc := NewLogin(repo, &fakeHasher{}, newFakeSessionStore(), &fakeTelemetry{})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "ann@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Zero(t, repo.called("UpdateLastLogin"))
	assert.Zero(t, repo.called("SetDefaultTeam"))
}

func TestLogin_NoTeamsAtAllFails(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	repo.addUser("orphan@example.com", "pw", nil)
	uc := NewLogin(repo, &fakeHasher{}, newFakeSessionStore(), &fakeTelemetry{})

	_, err := uc.Execute(context.Background(), LoginInput{Email: "orphan@example.com", Password: "pw"})
	assert.ErrorIs(t, err, domerrors.ErrNoTeam)
}
