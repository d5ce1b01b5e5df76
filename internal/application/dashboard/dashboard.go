package dashboard

import (
	"context"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/domain"
)

const recentIssueLimit = 10

type ViewModel struct {
	TeamID             int64            `json:"team_id"`
	Projects           []domain.Project `json:"projects"`
	RecentIssues       []domain.Issue   `json:"recent_issues"`
	IssuesAssignedToMe []domain.Issue   `json:"issues_assigned_to_me"`
}

// View assembles the dashboard for the session's active team.
type View struct {
	reader ports.DashboardReader
}

func NewView(reader ports.DashboardReader) *View {
	return &View{reader: reader}
}

func (uc *View) Execute(ctx context.Context, userID, teamID int64) (*ViewModel, error) {
	projects, err := uc.reader.ProjectsOf(ctx, teamID)
	if err != nil {
		return nil, err
	}
	recent, err := uc.reader.RecentIssues(ctx, teamID, recentIssueLimit)
	if err != nil {
		return nil, err
	}
	mine, err := uc.reader.IssuesAssignedTo(ctx, teamID, userID, recentIssueLimit)
	if err != nil {
		return nil, err
	}
	vm := &ViewModel{
		TeamID:             teamID,
		Projects:           projects,
		RecentIssues:       recent,
		IssuesAssignedToMe: mine,
	}
	// Empty slices, not nulls, in the JSON payload.
	if vm.Projects == nil {
		vm.Projects = []domain.Project{}
	}
	if vm.RecentIssues == nil {
		vm.RecentIssues = []domain.Issue{}
	}
	if vm.IssuesAssignedToMe == nil {
		vm.IssuesAssignedToMe = []domain.Issue{}
	}
	return vm, nil
}
