package account

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

// fakeAccountRepo is an in-memory AccountRepository that records calls so
// tests can assert which collaborator operations ran.
type fakeAccountRepo struct {
	mu       sync.Mutex
	users    map[string]*domain.UserAccount
	resets   map[string]*domain.PasswordResetRequest
	teams    map[int64][]domain.Team
	nextID   int64
	calls    []string
	failWith error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		users:  make(map[string]*domain.UserAccount),
		resets: make(map[string]*domain.PasswordResetRequest),
		teams:  make(map[int64][]domain.Team),
		nextID: 1,
	}
}

func (f *fakeAccountRepo) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAccountRepo) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.UserAccount, error) {
	f.record("GetByEmail")
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.users[email], nil
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.UserAccount) (*domain.SessionSeed, error) {
	f.record("Create")
	if f.failWith != nil {
		return nil, f.failWith
	}
	account.ID = f.nextID
	f.nextID++
	teamID := account.ID * 100
	account.DefaultTeamID = &teamID
	f.users[account.Email] = account
	f.teams[account.ID] = []domain.Team{{ID: teamID, Name: account.Name, CreatedBy: account.ID}}
	return &domain.SessionSeed{UserID: account.ID, TeamID: teamID, Email: account.Email}, nil
}

func (f *fakeAccountRepo) UpdateLastLogin(_ context.Context, userID int64) error {
	f.record("UpdateLastLogin")
	for _, u := range f.users {
		if u.ID == userID {
			now := time.Now()
			u.LastLoginAt = &now
		}
	}
	return nil
}

func (f *fakeAccountRepo) TeamsOf(_ context.Context, userID int64) ([]domain.Team, error) {
	f.record("TeamsOf")
	return f.teams[userID], nil
}

func (f *fakeAccountRepo) SetDefaultTeam(_ context.Context, userID, teamID int64) error {
	f.record("SetDefaultTeam")
	if f.failWith != nil {
		return f.failWith
	}
	for _, u := range f.users {
		if u.ID == userID {
			id := teamID
			u.DefaultTeamID = &id
		}
	}
	return nil
}

func (f *fakeAccountRepo) CreateResetRequest(_ context.Context, userID int64, codeHash string, expiresAt time.Time) error {
	f.record("CreateResetRequest")
	f.resets[codeHash] = &domain.PasswordResetRequest{
		ID:        int64(len(f.resets) + 1),
		UserID:    userID,
		CodeHash:  codeHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeAccountRepo) GetResetRequest(_ context.Context, codeHash string) (*domain.PasswordResetRequest, error) {
	f.record("GetResetRequest")
	req, ok := f.resets[codeHash]
	if !ok || req.UsedAt != nil || time.Now().After(req.ExpiresAt) {
		return nil, nil
	}
	return req, nil
}

func (f *fakeAccountRepo) MarkResetUsed(_ context.Context, codeHash string) error {
	f.record("MarkResetUsed")
	req, ok := f.resets[codeHash]
	if !ok || req.UsedAt != nil || time.Now().After(req.ExpiresAt) {
		return domerrors.ErrResetNotFound
	}
	now := time.Now()
	req.UsedAt = &now
	return nil
}

func (f *fakeAccountRepo) UpdatePassword(_ context.Context, userID int64, passwordHash, salt string) error {
	f.record("UpdatePassword")
	for _, u := range f.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
			u.Salt = salt
		}
	}
	return nil
}

// addUser seeds an account whose password hash matches fakeHasher output.
func (f *fakeAccountRepo) addUser(email, password string, defaultTeamID *int64, teams ...domain.Team) *domain.UserAccount {
	u := &domain.UserAccount{
		ID:            f.nextID,
		Email:         email,
		Name:          email,
		Salt:          "salt",
		PasswordHash:  fakeHash(password, "salt"),
		DefaultTeamID: defaultTeamID,
	}
	f.nextID++
	f.users[email] = u
	f.teams[u.ID] = teams
	return u
}

type fakeTeamRepo struct {
	members map[[2]int64]bool
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{members: make(map[[2]int64]bool)}
}

func (f *fakeTeamRepo) allow(userID, teamID int64) {
	f.members[[2]int64{userID, teamID}] = true
}

func (f *fakeTeamRepo) IsMember(_ context.Context, userID, teamID int64) (bool, error) {
	return f.members[[2]int64{userID, teamID}], nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	nextID   int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessionStore) Establish(_ context.Context, seed domain.SessionSeed) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	token := fmt.Sprintf("tok-%d", f.nextID)
	f.sessions[token] = &domain.Session{
		UserID:       seed.UserID,
		ActiveTeamID: seed.TeamID,
		Email:        seed.Email,
		CreatedAt:    time.Now(),
	}
	return token, nil
}

func (f *fakeSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, domerrors.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) SetActiveTeam(_ context.Context, token string, teamID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return domerrors.ErrSessionNotFound
	}
	s.ActiveTeamID = teamID
	return nil
}

func (f *fakeSessionStore) Clear(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

// fakeHasher is deterministic so seeded users can be matched.
type fakeHasher struct{ salts int }

func fakeHash(password, salt string) string {
	return "h:" + password + ":" + salt
}

func (f *fakeHasher) NewSalt() (string, error) {
	f.salts++
	return fmt.Sprintf("salt-%d", f.salts), nil
}

func (f *fakeHasher) Hash(password, salt string) (string, error) {
	return fakeHash(password, salt), nil
}

func (f *fakeHasher) Compare(encodedHash, password, salt string) bool {
	return encodedHash == fakeHash(password, salt)
}

type fakeTelemetry struct {
	mu         sync.Mutex
	events     []string
	exceptions []error
}

func (f *fakeTelemetry) RecordEvent(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, name)
}

func (f *fakeTelemetry) RecordException(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exceptions = append(f.exceptions, err)
}

func (f *fakeTelemetry) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e == name {
			return true
		}
	}
	return false
}

type fakeEnqueuer struct {
	mu     sync.Mutex
	emails []string
	urls   []string
}

func (f *fakeEnqueuer) EnqueueSendPasswordReset(_ context.Context, email, resetURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, email)
	f.urls = append(f.urls, resetURL)
	return nil
}
