package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
	domerrors "github.com/dustmassingale/ProjectPlanningTool/internal/domain/errors"
)

const (
	getAccountByEmailSQL = `SELECT id, email, name, password_hash, salt, default_team_id, last_login_at, created_at
		FROM users WHERE email = $1`
	insertAccountSQL = `INSERT INTO users (email, name, password_hash, salt, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	insertTeamSQL       = `INSERT INTO teams (name, created_by, created_at) VALUES ($1, $2, NOW()) RETURNING id`
	insertMembershipSQL = `INSERT INTO team_members (team_id, user_id, joined_at) VALUES ($1, $2, NOW())`
	setDefaultTeamSQL   = `UPDATE users SET default_team_id = $1 WHERE id = $2`
	updateLastLoginSQL  = `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	teamsOfSQL          = `SELECT t.id, t.name, t.created_by, t.created_at FROM teams t
		JOIN team_members m ON m.team_id = t.id WHERE m.user_id = $1 ORDER BY m.joined_at`
	insertResetSQL = `INSERT INTO password_reset_requests (user_id, code_hash, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())`
	getResetSQL = `SELECT id, user_id, code_hash, expires_at, used_at, created_at
		FROM password_reset_requests
		WHERE code_hash = $1 AND expires_at > NOW() AND used_at IS NULL`
	markResetUsedSQL = `UPDATE password_reset_requests SET used_at = NOW()
		WHERE code_hash = $1 AND expires_at > NOW() AND used_at IS NULL`
	updatePasswordSQL = `UPDATE users SET password_hash = $1, salt = $2 WHERE id = $3`
)

// AccountRepository implements ports.AccountRepository on pgx.
type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error) {
	var u domain.UserAccount
	err := r.pool.QueryRow(ctx, getAccountByEmailSQL, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Salt,
		&u.DefaultTeamID, &u.LastLoginAt, &u.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &u, nil
}

// Create inserts the account, its personal team, and the membership in one
// transaction so a user never exists without a default team.
func (r *AccountRepository) Create(ctx context.Context, account *domain.UserAccount) (*domain.SessionSeed, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var userID int64
	err = tx.QueryRow(ctx, insertAccountSQL,
		account.Email, account.Name, account.PasswordHash, account.Salt, account.CreatedAt,
	).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	var teamID int64
	teamName := account.Name
	if teamName == "" {
		teamName = account.Email
	}
	if err := tx.QueryRow(ctx, insertTeamSQL, teamName, userID).Scan(&teamID); err != nil {
		return nil, fmt.Errorf("insert personal team: %w", err)
	}
	if _, err := tx.Exec(ctx, insertMembershipSQL, teamID, userID); err != nil {
		return nil, fmt.Errorf("insert membership: %w", err)
	}
	if _, err := tx.Exec(ctx, setDefaultTeamSQL, teamID, userID); err != nil {
		return nil, fmt.Errorf("set default team: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.ID = userID
	account.DefaultTeamID = &teamID
	return &domain.SessionSeed{UserID: userID, TeamID: teamID, Email: account.Email}, nil
}

func (r *AccountRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, updateLastLoginSQL, userID)
	return err
}

func (r *AccountRepository) TeamsOf(ctx context.Context, userID int64) ([]domain.Team, error) {
	rows, err := r.pool.Query(ctx, teamsOfSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("teams of user: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		var t domain.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *AccountRepository) SetDefaultTeam(ctx context.Context, userID, teamID int64) error {
	_, err := r.pool.Exec(ctx, setDefaultTeamSQL, teamID, userID)
	return err
}

func (r *AccountRepository) CreateResetRequest(ctx context.Context, userID int64, codeHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, insertResetSQL, userID, codeHash, expiresAt)
	return err
}

func (r *AccountRepository) GetResetRequest(ctx context.Context, codeHash string) (*domain.PasswordResetRequest, error) {
	var req domain.PasswordResetRequest
	err := r.pool.QueryRow(ctx, getResetSQL, codeHash).Scan(
		&req.ID, &req.UserID, &req.CodeHash, &req.ExpiresAt, &req.UsedAt, &req.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reset request: %w", err)
	}
	return &req, nil
}

// MarkResetUsed consumes the request. The guarded UPDATE is the arbiter
// between concurrent submits: only one caller sees a row affected, the
// rest get ErrResetNotFound.
func (r *AccountRepository) MarkResetUsed(ctx context.Context, codeHash string) error {
	ct, err := r.pool.Exec(ctx, markResetUsedSQL, codeHash)
	if err != nil {
		return fmt.Errorf("mark reset used: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domerrors.ErrResetNotFound
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash, salt string) error {
	_, err := r.pool.Exec(ctx, updatePasswordSQL, passwordHash, salt, userID)
	return err
}

var _ ports.AccountRepository = (*AccountRepository)(nil)
