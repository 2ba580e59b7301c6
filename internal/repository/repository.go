package repository

import (
	"github.com/heinhtoo/quicktask-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// List retrieves users with pagination
	List(offset, limit int) ([]models.User, int64, error)
}

// TaskListReportRow is one row of the per-owner task-list report.
type TaskListReportRow struct {
	ID                   uint64
	Name                 string
	NoOfIncompletedTasks int64
}

// TaskListRepository defines the interface for task list data access.
// Mutations return the affected-row count so callers can observe an
// ownership mismatch, which the API deliberately reports as success.
type TaskListRepository interface {
	// Create creates a new task list
	Create(list *models.TaskList) error

	// Rename updates the list name scoped by the ownership predicate
	Rename(id, ownerID uint64, name string) (int64, error)

	// Delete removes the list and detaches its tasks; tasks survive with
	// a NULL task_list_id
	Delete(id, ownerID uint64) (int64, error)

	// Report returns every list owned by the user with its incomplete
	// task count, newest list first
	Report(ownerID uint64) ([]TaskListReportRow, error)
}

// TeamReportRow is one flattened row of the team report join. UserID and
// Username are nil when the LEFT JOIN to members produced no row.
type TeamReportRow struct {
	TeamID               uint64
	TeamName             string
	CreatedBy            string
	UserID               *uint64
	Username             *string
	NoOfIncompletedTasks int64
}

// TeamRepository defines the interface for team and membership data access
type TeamRepository interface {
	// CreateWithCreatorMembership creates the team and the creator's
	// membership row in a single transaction
	CreateWithCreatorMembership(team *models.Team) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// Rename updates the team name scoped by the ownership predicate
	Rename(id, ownerID uint64, name string) (int64, error)

	// Delete removes the team and its membership rows scoped by the
	// ownership predicate
	Delete(id, ownerID uint64) (int64, error)

	// AddMembers inserts memberships idempotently; existing rows are left
	// untouched
	AddMembers(teamID uint64, userIDs []uint64) error

	// ListMemberIDs returns the user ids of a team's members
	ListMemberIDs(teamID uint64) ([]uint64, error)

	// ReportRows returns the flattened team report join for every team the
	// user owns or belongs to
	ReportRows(ownerID uint64) ([]TeamReportRow, error)

	// CountUsersByIDs counts how many of the given user IDs exist
	CountUsersByIDs(userIDs []uint64) (int64, error)
}

// TaskRow is one row of the task listing with its joined display names.
type TaskRow struct {
	ID              uint64
	Name            string
	Note            string
	Priority        int
	IsComplete      bool
	OrderNo         int
	CreatedByUserID uint64
	TaskListID      *uint64
	TeamID          *uint64
	CreatedBy       string
	ListName        *string
	TeamName        *string
}

// TaskFilter narrows the task listing. Scope is always the owner's own
// tasks plus tasks of teams the owner belongs to.
type TaskFilter struct {
	OwnerID  uint64
	TeamName *string
	ListID   *uint64
}

// OrderUpdate is one element of a reorder batch.
type OrderUpdate struct {
	ID      uint64
	OrderNo int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts the task, assigning the next orderNo for the creator
	// inside the same transaction
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List returns visible tasks ordered by orderNo then id
	List(filter TaskFilter) ([]TaskRow, error)

	// Update rewrites the task's editable fields scoped by the ownership
	// predicate
	Update(id, ownerID uint64, task *models.Task) (int64, error)

	// SetComplete flips only the completion flag scoped by the ownership
	// predicate
	SetComplete(id, ownerID uint64, isComplete bool) (int64, error)

	// Reorder applies the whole batch of order updates in one transaction
	Reorder(ownerID uint64, updates []OrderUpdate) error

	// Delete removes the task scoped by the ownership predicate
	Delete(id, ownerID uint64) (int64, error)
}
