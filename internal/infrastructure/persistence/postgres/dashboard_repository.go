package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
)

const (
	projectsOfSQL = `SELECT id, team_id, name, created_at FROM projects WHERE team_id = $1 ORDER BY name`
	recentIssuesSQL = `SELECT i.id, i.project_id, i.title, i.status, i.assigned_to, i.created_at
		FROM issues i JOIN projects p ON p.id = i.project_id
		WHERE p.team_id = $1 ORDER BY i.created_at DESC LIMIT $2`
	assignedIssuesSQL = `SELECT i.id, i.project_id, i.title, i.status, i.assigned_to, i.created_at
		FROM issues i JOIN projects p ON p.id = i.project_id
		WHERE p.team_id = $1 AND i.assigned_to = $2 ORDER BY i.created_at DESC LIMIT $3`
)

// DashboardRepository implements ports.DashboardReader on pgx.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

func (r *DashboardRepository) ProjectsOf(ctx context.Context, teamID int64) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, projectsOfSQL, teamID)
	if err != nil {
		return nil, fmt.Errorf("projects of team: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *DashboardRepository) RecentIssues(ctx context.Context, teamID int64, limit int) ([]domain.Issue, error) {
	rows, err := r.pool.Query(ctx, recentIssuesSQL, teamID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent issues: %w", err)
	}
	defer rows.Close()
	return scanIssues(rows)
}

func (r *DashboardRepository) IssuesAssignedTo(ctx context.Context, teamID, userID int64, limit int) ([]domain.Issue, error) {
	rows, err := r.pool.Query(ctx, assignedIssuesSQL, teamID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("assigned issues: %w", err)
	}
	defer rows.Close()
	return scanIssues(rows)
}

func scanIssues(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]domain.Issue, error) {
	var issues []domain.Issue
	for rows.Next() {
		var i domain.Issue
		if err := rows.Scan(&i.ID, &i.ProjectID, &i.Title, &i.Status, &i.AssignedTo, &i.CreatedAt); err != nil {
			return nil, err
		}
		issues = append(issues, i)
	}
	return issues, rows.Err()
}

var _ ports.DashboardReader = (*DashboardRepository)(nil)
