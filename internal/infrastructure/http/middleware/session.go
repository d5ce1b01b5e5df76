package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
)

// CookieName carries the opaque session token.
const CookieName = "teamboard_session"

// SessionResolver turns the session cookie into request context. Routes
// behind Handler require an authenticated session; everything else stays
// anonymous.
type SessionResolver struct {
	sessions ports.SessionStore
}

func NewSessionResolver(sessions ports.SessionStore) *SessionResolver {
	return &SessionResolver{sessions: sessions}
}

func (m *SessionResolver) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			unauthorized(w)
			return
		}
		sess, err := m.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			unauthorized(w)
			return
		}
		ctx := WithSession(r.Context(), cookie.Value, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "sign in required",
		"code":  "unauthorized",
	})
}
