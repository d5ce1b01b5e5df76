package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
)

const isMemberSQL = `SELECT EXISTS(SELECT 1 FROM team_members WHERE user_id = $1 AND team_id = $2)`

// TeamRepository implements ports.TeamRepository on pgx.
type TeamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

func (r *TeamRepository) IsMember(ctx context.Context, userID, teamID int64) (bool, error) {
	var member bool
	if err := r.pool.QueryRow(ctx, isMemberSQL, userID, teamID).Scan(&member); err != nil {
		return false, fmt.Errorf("is member: %w", err)
	}
	return member, nil
}

var _ ports.TeamRepository = (*TeamRepository)(nil)
