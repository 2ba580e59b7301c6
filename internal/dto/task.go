package dto

import (
	"github.com/heinhtoo/quicktask-api/internal/repository"
)

// TaskItem represents a task in list responses with its joined display
// names.
type TaskItem struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Note       string  `json:"note"`
	Priority   int     `json:"priority"`
	IsComplete bool    `json:"isComplete"`
	OrderNo    int     `json:"orderNo"`
	TaskListID *uint64 `json:"taskListId,omitempty"`
	TeamID     *uint64 `json:"teamId,omitempty"`
	CreatedBy  string  `json:"createdBy"`
	ListName   *string `json:"listName,omitempty"`
	TeamName   *string `json:"teamName,omitempty"`
}

// ToTaskItems converts task rows into response entries
func ToTaskItems(rows []repository.TaskRow) []TaskItem {
	items := make([]TaskItem, len(rows))
	for i, row := range rows {
		items[i] = TaskItem{
			ID:         row.ID,
			Name:       row.Name,
			Note:       row.Note,
			Priority:   row.Priority,
			IsComplete: row.IsComplete,
			OrderNo:    row.OrderNo,
			TaskListID: row.TaskListID,
			TeamID:     row.TeamID,
			CreatedBy:  row.CreatedBy,
			ListName:   row.ListName,
			TeamName:   row.TeamName,
		}
	}
	return items
}
