package repository

import (
	"github.com/heinhtoo/quicktask-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskListRepository is a GORM implementation of TaskListRepository
type GormTaskListRepository struct {
	db *gorm.DB
}

// NewTaskListRepository creates a new TaskListRepository
func NewTaskListRepository(db *gorm.DB) TaskListRepository {
	return &GormTaskListRepository{db: db}
}

// Create creates a new task list
func (r *GormTaskListRepository) Create(list *models.TaskList) error {
	return r.db.Create(list).Error
}

// Rename updates the list name scoped by the ownership predicate
func (r *GormTaskListRepository) Rename(id, ownerID uint64, name string) (int64, error) {
	result := r.db.Model(&models.TaskList{}).
		Where("id = ? AND created_by_user_id = ?", id, ownerID).
		Update("name", name)
	return result.RowsAffected, result.Error
}

// Delete removes the list and detaches its tasks in a single transaction.
// The detach runs explicitly rather than relying on the SET NULL foreign
// key so behavior is identical across drivers.
func (r *GormTaskListRepository) Delete(id, ownerID uint64) (int64, error) {
	var affected int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND created_by_user_id = ?", id, ownerID).
			Delete(&models.TaskList{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		return tx.Model(&models.Task{}).
			Where("task_list_id = ?", id).
			Update("task_list_id", nil).Error
	})

	return affected, err
}

// Report returns every list owned by the user with its incomplete task
// count, newest list first.
func (r *GormTaskListRepository) Report(ownerID uint64) ([]TaskListReportRow, error) {
	rows := []TaskListReportRow{}

	err := r.db.Raw(`
		SELECT
			tl.id AS id,
			tl.name AS name,
			COUNT(t.id) AS no_of_incompleted_tasks
		FROM task_lists tl
		LEFT JOIN tasks t ON tl.id = t.task_list_id AND t.is_complete = ?
		WHERE tl.created_by_user_id = ?
		GROUP BY tl.id, tl.name, tl.created_at
		ORDER BY tl.created_at DESC, tl.id DESC`,
		false, ownerID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
