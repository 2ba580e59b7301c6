package repository

import (
	"database/sql"

	"github.com/heinhtoo/quicktask-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create inserts the task with a deterministic initial order. The next
// orderNo is max+1 over the creator's tasks, read inside the insert
// transaction so concurrent creates for the same user cannot both observe
// the same maximum on serializable stores.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxOrder sql.NullInt64
		err := tx.Model(&models.Task{}).
			Where("created_by_user_id = ?", task.CreatedByUserID).
			Select("MAX(order_no)").
			Scan(&maxOrder).Error
		if err != nil {
			return err
		}

		if maxOrder.Valid {
			task.OrderNo = int(maxOrder.Int64) + 1
		} else {
			task.OrderNo = 0
		}

		return tx.Create(task).Error
	})
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns tasks the owner created plus tasks of teams the owner
// belongs to, optionally narrowed to one team name or one list id, always
// ordered by orderNo with id as the tie breaker.
func (r *GormTaskRepository) List(filter TaskFilter) ([]TaskRow, error) {
	rows := []TaskRow{}

	query := `
		SELECT
			t.id, t.name, t.note, t.priority, t.is_complete, t.order_no,
			t.created_by_user_id, t.task_list_id, t.team_id,
			u.username AS created_by,
			tl.name AS list_name,
			tm.name AS team_name
		FROM tasks t
		LEFT JOIN users u ON t.created_by_user_id = u.id
		LEFT JOIN task_lists tl ON t.task_list_id = tl.id
		LEFT JOIN teams tm ON t.team_id = tm.id
		WHERE (t.created_by_user_id = ?
			OR t.team_id IN (SELECT team_id FROM team_members WHERE user_id = ?))`

	args := []interface{}{filter.OwnerID, filter.OwnerID}

	if filter.TeamName != nil {
		query += ` AND tm.name = ?`
		args = append(args, *filter.TeamName)
	}
	if filter.ListID != nil {
		query += ` AND t.task_list_id = ?`
		args = append(args, *filter.ListID)
	}

	query += ` ORDER BY t.order_no, t.id`

	if err := r.db.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// Update rewrites the task's editable fields scoped by the ownership
// predicate. createdByUserId and orderNo are never touched here.
func (r *GormTaskRepository) Update(id, ownerID uint64, task *models.Task) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND created_by_user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"name":         task.Name,
			"note":         task.Note,
			"priority":     task.Priority,
			"is_complete":  task.IsComplete,
			"task_list_id": task.TaskListID,
			"team_id":      task.TeamID,
		})
	return result.RowsAffected, result.Error
}

// SetComplete flips only the completion flag scoped by the ownership
// predicate.
func (r *GormTaskRepository) SetComplete(id, ownerID uint64, isComplete bool) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND created_by_user_id = ?", id, ownerID).
		Update("is_complete", isComplete)
	return result.RowsAffected, result.Error
}

// Reorder applies the whole batch atomically. Every update carries the
// ownership predicate, so rows the caller does not own are silently left
// alone; any store error rolls back the entire batch.
func (r *GormTaskRepository) Reorder(ownerID uint64, updates []OrderUpdate) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			err := tx.Model(&models.Task{}).
				Where("id = ? AND created_by_user_id = ?", update.ID, ownerID).
				Update("order_no", update.OrderNo).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the task scoped by the ownership predicate
func (r *GormTaskRepository) Delete(id, ownerID uint64) (int64, error) {
	result := r.db.Where("id = ? AND created_by_user_id = ?", id, ownerID).
		Delete(&models.Task{})
	return result.RowsAffected, result.Error
}
