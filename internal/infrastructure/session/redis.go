package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

const keyPrefix = "session:"

// RedisStore implements ports.SessionStore on Redis. Session state is a
// JSON blob under session:<token> with the configured TTL; the token is
// an opaque random UUID that only ever lives in the cookie.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Establish(ctx context.Context, seed domain.SessionSeed) (string, error) {
	token := newToken()
	sess := domain.Session{
		UserID:       seed.UserID,
		ActiveTeamID: seed.TeamID,
		Email:        seed.Email,
		CreatedAt:    time.Now(),
	}
	blob, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, keyPrefix+token, blob, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	blob, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, domerrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(blob, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) SetActiveTeam(ctx context.Context, token string, teamID int64) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	sess.ActiveTeamID = teamID
	blob, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	// KEEPTTL so switching teams does not extend the session.
	if err := s.client.Set(ctx, keyPrefix+token, blob, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func newToken() string {
	return uuid.NewString()
}

var _ ports.SessionStore = (*RedisStore)(nil)
