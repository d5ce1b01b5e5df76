package account

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

// captureCode runs the forgot-password flow and pulls the activation code
// out of the URL handed to the enqueuer, the way the email recipient would.
func captureCode(t *testing.T, repo *fakeAccountRepo, enq *fakeEnqueuer, email string) string {
	t.Helper()
	forgot := NewForgotPassword(repo, enq, &fakeTelemetry{}, "https://app.example.com", 3600)
	_, err := forgot.Execute(context.Background(), ForgotPasswordInput{Email: email})
	require.NoError(t, err)
	require.Len(t, enq.urls, 1)
	parts := strings.Split(enq.urls[0], "/")
	return parts[len(parts)-1]
}

func TestForgotPassword_KnownEmailCreatesRequestAndEnqueuesEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	teamID := int64(1)
	repo.addUser("ann@example.com", "pw", &teamID)
	enq := &fakeEnqueuer{}

	code := captureCode(t, repo, enq, "ann@example.com")
	assert.Len(t, code, 64, "activation code is 32 random bytes hex encoded")
	assert.Equal(t, []string{"ann@example.com"}, enq.emails)
	assert.Equal(t, 1, repo.called("CreateResetRequest"))

	// Only the hash is stored, never the raw code.
	_, rawStored := repo.resets[code]
	assert.False(t, rawStored)
	_, hashStored := repo.resets[hashActivationCode(code)]
	assert.True(t, hashStored)
}

// Unknown emails get the same accepted result as known ones.
func TestForgotPassword_UnknownEmailIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	enq := &fakeEnqueuer{}
	uc := NewForgotPassword(repo, enq, &fakeTelemetry{}, "https://app.example.com", 3600)

	res, err := uc.Execute(context.Background(), ForgotPasswordInput{Email: "ghost@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, enq.emails)
	assert.Zero(t, repo.called("CreateResetRequest"))
}

func TestResetLookup_ValidCodePrefillsForm(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	teamID := int64(1)
	repo.addUser("ann@example.com", "pw", &teamID)
	code := captureCode(t, repo, &fakeEnqueuer{}, "ann@example.com")

	uc := NewResetPassword(repo, &fakeHasher{}, &fakeTelemetry{})
	res, err := uc.Lookup(context.Background(), code)
	require.NoError(t, err)
	assert.Equal(t, code, res.ActivationCode)
}

func TestResetLookup_UnknownCodeNotFound(t *testing.T) {
	t.Parallel()

	uc := NewResetPassword(newFakeAccountRepo(), &fakeHasher{}, &fakeTelemetry{})
	_, err := uc.Lookup(context.Background(), "bogus")
	assert.ErrorIs(t, err, domerrors.ErrResetNotFound)
}

func TestResetSubmit_UpdatesPasswordExactlyOnce(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	teamID := int64(1)
	u := repo.addUser("ann@example.com", "oldpw", &teamID)
	oldHash := u.PasswordHash
	code := captureCode(t, repo, &fakeEnqueuer{}, "ann@example.com")

	uc := NewResetPassword(repo, &fakeHasher{}, &fakeTelemetry{})
	res, err := uc.Submit(context.Background(), ResetSubmitInput{ActivationCode: code, NewPassword: "newpw"})
	require.NoError(t, err)
	assert.Equal(t, "/account/password-updated", res.RedirectTo)
	assert.Equal(t, 1, repo.called("UpdatePassword"))
	assert.NotEqual(t, oldHash, u.PasswordHash)
	assert.NotEqual(t, "salt", u.Salt, "reset must issue a fresh salt")
}

func TestResetSubmit_UnknownCodeNeverCallsUpdatePassword(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	uc := NewResetPassword(repo, &fakeHasher{}, &fakeTelemetry{})

	_, err := uc.Submit(context.Background(), ResetSubmitInput{ActivationCode: "bogus", NewPassword: "x"})
	assert.ErrorIs(t, err, domerrors.ErrResetNotFound)
	assert.Zero(t, repo.called("UpdatePassword"))
}

// Activation codes are single use: replaying a consumed link fails.
func TestResetSubmit_CodeIsSingleUse(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	teamID := int64(1)
	repo.addUser("ann@example.com", "oldpw", &teamID)
	code := captureCode(t, repo, &fakeEnqueuer{}, "ann@example.com")

	uc := NewResetPassword(repo, &fakeHasher{}, &fakeTelemetry{})
	_, err := uc.Submit(context.Background(), ResetSubmitInput{ActivationCode: code, NewPassword: "first"})
	require.NoError(t, err)

	_, err = uc.Submit(context.Background(), ResetSubmitInput{ActivationCode: code, NewPassword: "second"})
	assert.ErrorIs(t, err, domerrors.ErrResetNotFound)
	assert.Equal(t, 1, repo.called("UpdatePassword"))
}

// staleReadRepo keeps returning a consumed request from GetResetRequest,
// modeling a read that raced ahead of another submit's used_at write.
type staleReadRepo struct{ *fakeAccountRepo }

func (s *staleReadRepo) GetResetRequest(_ context.Context, codeHash string) (*domain.PasswordResetRequest, error) {
	s.record("GetResetRequest")
	if req, ok := s.resets[codeHash]; ok && time.Now().Before(req.ExpiresAt) {
		return req, nil
	}
	return nil, nil
}

// Even when the lookup still sees the request, consuming it is the arbiter:
// the losing submit fails and never touches the password.
func TestResetSubmit_ConcurrentSubmitsHaveOneWinner(t *testing.T) {
	t.Parallel()

	repo := newFakeAccountRepo()
	teamID := int64(1)
	repo.addUser("ann@example.com", "oldpw", &teamID)
	code := captureCode(t, repo, &fakeEnqueuer{}, "ann@example.com")

	uc := NewResetPassword(&staleReadRepo{repo}, &fakeHasher{}, &fakeTelemetry{})
	_, err := uc.Submit(context.Background(), ResetSubmitInput{ActivationCode: code, NewPassword: "first"})
	require.NoError(t, err)

	_, err = uc.Submit(context.Background(), ResetSubmitInput{ActivationCode: code, NewPassword: "second"})
	assert.ErrorIs(t, err, domerrors.ErrResetNotFound)
	assert.Equal(t, 1, repo.called("UpdatePassword"))
}
