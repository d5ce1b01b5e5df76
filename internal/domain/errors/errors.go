package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status. The credentials
// message is deliberately identical for unknown email and wrong password.
var (
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	ErrAccountExists      = errors.New("account already exists with this email address")
	ErrNotTeamMember      = errors.New("you do not belong to this team")
	ErrResetNotFound      = errors.New("password reset request not found or expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoTeam             = errors.New("user belongs to no team")
)

// Kind classifies a workflow failure for response shaping: business-rule
// violations carry their own message, everything else collapses to a
// non-diagnostic internal error. Input validation is rejected before a
// workflow runs and never reaches classification.
type Kind int

const (
	KindUnexpected Kind = iota
	KindBusinessRule
)

// Classify maps an error to its Kind. Unknown errors are KindUnexpected and
// must never be surfaced verbatim to the caller.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnexpected
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAccountExists),
		errors.Is(err, ErrNotTeamMember),
		errors.Is(err, ErrResetNotFound):
		return KindBusinessRule
	default:
		return KindUnexpected
	}
}
