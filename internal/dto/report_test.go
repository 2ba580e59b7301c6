package dto

import (
	"testing"

	"github.com/heinhtoo/quicktask-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestFoldTeamReports_GroupsMembers(t *testing.T) {
	aliceID, bobID := uint64(1), uint64(2)
	alice, bob := "alice", "bob"

	rows := []repository.TeamReportRow{
		{TeamID: 10, TeamName: "Platform", CreatedBy: "alice", UserID: &aliceID, Username: &alice, NoOfIncompletedTasks: 3},
		{TeamID: 10, TeamName: "Platform", CreatedBy: "alice", UserID: &bobID, Username: &bob, NoOfIncompletedTasks: 3},
	}

	reports := FoldTeamReports(rows)
	assert.Len(t, reports, 1)
	assert.Equal(t, uint64(10), reports[0].ID)
	assert.Equal(t, []string{"alice", "bob"}, reports[0].Users)
	assert.Equal(t, []uint64{1, 2}, reports[0].UserIDs)
	assert.Equal(t, int64(3), reports[0].NoOfIncompletedTasks)
}

func TestFoldTeamReports_SkipsNullMemberSlot(t *testing.T) {
	// A memberless team produces one join row with NULL member columns;
	// it must still yield exactly one report with empty arrays.
	rows := []repository.TeamReportRow{
		{TeamID: 20, TeamName: "Empty", CreatedBy: "alice"},
	}

	reports := FoldTeamReports(rows)
	assert.Len(t, reports, 1)
	assert.Empty(t, reports[0].Users)
	assert.Empty(t, reports[0].UserIDs)
}

func TestFoldTeamReports_MultipleTeamsKeepRowOrder(t *testing.T) {
	aliceID := uint64(1)
	alice := "alice"

	rows := []repository.TeamReportRow{
		{TeamID: 2, TeamName: "Newer", CreatedBy: "alice", UserID: &aliceID, Username: &alice},
		{TeamID: 1, TeamName: "Older", CreatedBy: "alice", UserID: &aliceID, Username: &alice},
	}

	reports := FoldTeamReports(rows)
	assert.Len(t, reports, 2)
	assert.Equal(t, "Newer", reports[0].Name)
	assert.Equal(t, "Older", reports[1].Name)
}
