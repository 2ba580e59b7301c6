package models

import "time"

type Task struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"type:varchar(200);not null" json:"name"`
	Note            string    `gorm:"type:text" json:"note"`
	Priority        int       `gorm:"not null" json:"priority"`
	IsComplete      bool      `gorm:"not null;default:false" json:"isComplete"`
	OrderNo         int       `gorm:"not null;default:0;index" json:"orderNo"`
	CreatedByUserID uint64    `gorm:"not null;index" json:"createdByUserId"`
	TaskListID      *uint64   `gorm:"index" json:"taskListId"`
	TeamID          *uint64   `gorm:"index" json:"teamId"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relations. TeamID deliberately has no declared relation: the schema
	// defines no foreign key on it, so deleting a team leaves the column
	// dangling rather than cascading into tasks.
	CreatedByUser User      `gorm:"foreignKey:CreatedByUserID;constraint:OnDelete:CASCADE" json:"-"`
	TaskList      *TaskList `gorm:"foreignKey:TaskListID" json:"-"`
}

// ParentKind discriminates the two possible owners of a task.
type ParentKind int

const (
	ParentList ParentKind = iota
	ParentTeam
)

// TaskParent is a tagged variant selecting exactly one of the task's two
// parent foreign keys. Constructing a Task through Apply guarantees the
// mutual-exclusivity invariant instead of leaving it to each write path.
type TaskParent struct {
	kind ParentKind
	id   uint64
}

// ListParent attaches a task to a task list.
func ListParent(taskListID uint64) TaskParent {
	return TaskParent{kind: ParentList, id: taskListID}
}

// TeamParent attaches a task to a team.
func TeamParent(teamID uint64) TaskParent {
	return TaskParent{kind: ParentTeam, id: teamID}
}

// Kind reports which side of the variant is set.
func (p TaskParent) Kind() ParentKind {
	return p.kind
}

// ID returns the parent record id.
func (p TaskParent) ID() uint64 {
	return p.id
}

// Apply collapses the variant onto the task's columns, setting one foreign
// key and clearing the other.
func (p TaskParent) Apply(t *Task) {
	id := p.id
	switch p.kind {
	case ParentTeam:
		t.TeamID = &id
		t.TaskListID = nil
	default:
		t.TaskListID = &id
		t.TeamID = nil
	}
}
