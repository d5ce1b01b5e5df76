package middleware

import (
	"context"

	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "session"

// sessionContext pairs the resolved session with the token it came from so
// handlers can address the store explicitly.
type sessionContext struct {
	token   string
	session *domain.Session
}

// WithSession injects the resolved session and its token into the context.
func WithSession(ctx context.Context, token string, sess *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, &sessionContext{token: token, session: sess})
}

// SessionFromContext returns the session and its token, or ("", nil).
func SessionFromContext(ctx context.Context) (string, *domain.Session) {
	v := ctx.Value(sessionContextKey)
	if v == nil {
		return "", nil
	}
	sc, _ := v.(*sessionContext)
	if sc == nil {
		return "", nil
	}
	return sc.token, sc.session
}
