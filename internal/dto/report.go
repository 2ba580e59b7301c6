package dto

import (
	"github.com/heinhtoo/quicktask-api/internal/repository"
)

// TaskListReport is one entry of the per-owner task-list report.
type TaskListReport struct {
	ID                   uint64 `json:"id"`
	Name                 string `json:"name"`
	NoOfIncompletedTasks int64  `json:"noOfIncompletedTasks"`
}

// TeamReport is one entry of the per-owner team report with the folded
// member arrays.
type TeamReport struct {
	ID                   uint64   `json:"id"`
	Name                 string   `json:"name"`
	CreatedBy            string   `json:"createdBy"`
	UserIDs              []uint64 `json:"userIds"`
	Users                []string `json:"users"`
	NoOfIncompletedTasks int64    `json:"noOfIncompletedTasks"`
}

// ToTaskListReports converts report rows into response entries
func ToTaskListReports(rows []repository.TaskListReportRow) []TaskListReport {
	reports := make([]TaskListReport, len(rows))
	for i, row := range rows {
		reports[i] = TaskListReport{
			ID:                   row.ID,
			Name:                 row.Name,
			NoOfIncompletedTasks: row.NoOfIncompletedTasks,
		}
	}
	return reports
}

// FoldTeamReports groups the flattened join rows into one report per team.
// Member sub-rows are appended in the order returned; a NULL member slot
// from the LEFT JOIN means the team has no members and contributes nothing
// to the arrays, so a memberless team still yields exactly one entry.
func FoldTeamReports(rows []repository.TeamReportRow) []TeamReport {
	reports := []TeamReport{}
	index := make(map[uint64]int)

	for _, row := range rows {
		i, seen := index[row.TeamID]
		if !seen {
			reports = append(reports, TeamReport{
				ID:                   row.TeamID,
				Name:                 row.TeamName,
				CreatedBy:            row.CreatedBy,
				UserIDs:              []uint64{},
				Users:                []string{},
				NoOfIncompletedTasks: row.NoOfIncompletedTasks,
			})
			i = len(reports) - 1
			index[row.TeamID] = i
		}

		if row.UserID != nil && row.Username != nil {
			reports[i].UserIDs = append(reports[i].UserIDs, *row.UserID)
			reports[i].Users = append(reports[i].Users, *row.Username)
		}
	}

	return reports
}
