package session

import (
	"context"
	"sync"
	"time"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

type memoryEntry struct {
	sess      domain.Session
	expiresAt time.Time
}

// MemoryStore is the fallback SessionStore when Redis is not configured.
// Sessions do not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl}
}

func (s *MemoryStore) Establish(_ context.Context, seed domain.SessionSeed) (string, error) {
	token := newToken()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{
		sess: domain.Session{
			UserID:       seed.UserID,
			ActiveTeamID: seed.TeamID,
			Email:        seed.Email,
			CreatedAt:    time.Now(),
		},
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return nil, domerrors.ErrSessionNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, token)
		return nil, domerrors.ErrSessionNotFound
	}
	sess := e.sess
	return &sess, nil
}

func (s *MemoryStore) SetActiveTeam(_ context.Context, token string, teamID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok || time.Now().After(e.expiresAt) {
		return domerrors.ErrSessionNotFound
	}
	e.sess.ActiveTeamID = teamID
	s.entries[token] = e
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}

var _ ports.SessionStore = (*MemoryStore)(nil)
