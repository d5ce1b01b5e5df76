package account

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
)

type ForgotPasswordInput struct {
	Email string
}

type ForgotPasswordResult struct{}

// ForgotPassword creates a single-use reset request and enqueues the reset
// email. Unknown emails get the same result as known ones so the endpoint
// cannot be used to probe for accounts, matching the login policy.
type ForgotPassword struct {
	accounts   ports.AccountRepository
	enqueuer   ports.TaskEnqueuer
	telemetry  ports.Telemetry
	baseURL    string
	expirySecs int64
}

func NewForgotPassword(accounts ports.AccountRepository, enqueuer ports.TaskEnqueuer, telemetry ports.Telemetry, baseURL string, expirySecs int64) *ForgotPassword {
	if expirySecs <= 0 {
		expirySecs = 3600
	}
	return &ForgotPassword{
		accounts:   accounts,
		enqueuer:   enqueuer,
		telemetry:  telemetry,
		baseURL:    baseURL,
		expirySecs: expirySecs,
	}
}

func (uc *ForgotPassword) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordResult, error) {
	uc.telemetry.RecordEvent("account.forgot_password")

	user, err := uc.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return &ForgotPasswordResult{}, nil
	}

	code, err := newActivationCode()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(time.Duration(uc.expirySecs) * time.Second)
	if err := uc.accounts.CreateResetRequest(ctx, user.ID, hashActivationCode(code), expiresAt); err != nil {
		return nil, err
	}

	resetURL := fmt.Sprintf("%s/account/reset-password/%s", uc.baseURL, code)
	_ = uc.enqueuer.EnqueueSendPasswordReset(ctx, user.Email, resetURL)
	return &ForgotPasswordResult{}, nil
}

// newActivationCode returns 32 random bytes hex encoded. Only its SHA-256
// is persisted; the raw code travels in the email link.
func newActivationCode() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func hashActivationCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
