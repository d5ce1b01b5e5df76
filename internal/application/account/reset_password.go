package account

import (
	"context"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

type ResetLookupResult struct {
	// ActivationCode is echoed back to prefill the reset form.
	ActivationCode string
}

type ResetSubmitInput struct {
	ActivationCode string
	NewPassword    string
}

type ResetSubmitResult struct {
	RedirectTo string
}

// ResetPassword resolves activation codes from reset links and applies the
// new password. Codes are single use: a completed reset marks the request
// used, so replaying the link yields ErrResetNotFound.
type ResetPassword struct {
	accounts  ports.AccountRepository
	hasher    ports.PasswordHasher
	telemetry ports.Telemetry
}

func NewResetPassword(accounts ports.AccountRepository, hasher ports.PasswordHasher, telemetry ports.Telemetry) *ResetPassword {
	return &ResetPassword{accounts: accounts, hasher: hasher, telemetry: telemetry}
}

// Lookup resolves a code from the emailed link into form-prefill data.
// It does not consume the request.
func (uc *ResetPassword) Lookup(ctx context.Context, activationCode string) (*ResetLookupResult, error) {
	req, err := uc.accounts.GetResetRequest(ctx, hashActivationCode(activationCode))
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domerrors.ErrResetNotFound
	}
	return &ResetLookupResult{ActivationCode: activationCode}, nil
}

// Submit re-resolves the code, consumes it, and rehashes the password with
// a fresh salt. Consuming before the password write means concurrent
// submits race on the used_at update and only the winner changes the
// password.
func (uc *ResetPassword) Submit(ctx context.Context, input ResetSubmitInput) (*ResetSubmitResult, error) {
	codeHash := hashActivationCode(input.ActivationCode)
	req, err := uc.accounts.GetResetRequest(ctx, codeHash)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domerrors.ErrResetNotFound
	}
	if err := uc.accounts.MarkResetUsed(ctx, codeHash); err != nil {
		return nil, err
	}

	salt, err := uc.hasher.NewSalt()
	if err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(input.NewPassword, salt)
	if err != nil {
		return nil, err
	}
	if err := uc.accounts.UpdatePassword(ctx, req.UserID, hash, salt); err != nil {
		return nil, err
	}
	uc.telemetry.RecordEvent("account.password_reset")
	return &ResetSubmitResult{RedirectTo: "/account/password-updated"}, nil
}
