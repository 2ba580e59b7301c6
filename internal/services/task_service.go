package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/heinhtoo/quicktask-api/internal/cache"
	"github.com/heinhtoo/quicktask-api/internal/constants"
	"github.com/heinhtoo/quicktask-api/internal/dto"
	"github.com/heinhtoo/quicktask-api/internal/logger"
	"github.com/heinhtoo/quicktask-api/internal/models"
	"github.com/heinhtoo/quicktask-api/internal/repository"
)

var (
	ErrInvalidPriority = errors.New("priority must be between 1 and 5")
	ErrNoOrderUpdates  = errors.New("at least one order update is required")
)

// TaskService handles task business logic: creation with deterministic
// initial ordering, per-user reordering, completion toggling and the
// visibility rules for reads.
type TaskService struct {
	tasks repository.TaskRepository
	cache cache.Cache
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks repository.TaskRepository, c cache.Cache) *TaskService {
	return &TaskService{
		tasks: tasks,
		cache: c,
	}
}

// TaskInput carries the caller-editable task fields. Parent selects the
// one list or team the task belongs to.
type TaskInput struct {
	Name       string
	Note       string
	Priority   int
	IsComplete bool
	Parent     models.TaskParent
}

// List returns tasks the owner created plus tasks of teams the owner is a
// member of, ordered by orderNo. The optional filters narrow the visible
// set to one team name or one list id. Listings are never cached; they
// back the drag-and-drop board and must always reflect the store.
func (s *TaskService) List(ownerID uint64, teamName *string, listID *uint64) ([]dto.TaskItem, error) {
	rows, err := s.tasks.List(repository.TaskFilter{
		OwnerID:  ownerID,
		TeamName: teamName,
		ListID:   listID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return dto.ToTaskItems(rows), nil
}

// Create inserts a task owned by the user. The repository assigns orderNo
// max+1 so brand-new tasks always render last.
func (s *TaskService) Create(ctx context.Context, ownerID uint64, input TaskInput) error {
	if err := validateTaskInput(input); err != nil {
		return err
	}

	task := &models.Task{
		Name:            input.Name,
		Note:            input.Note,
		Priority:        input.Priority,
		IsComplete:      input.IsComplete,
		CreatedByUserID: ownerID,
	}
	input.Parent.Apply(task)

	if err := s.tasks.Create(task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidateReports(ctx, ownerID)
	return nil
}

// Update rewrites a task's editable fields, including moving it between
// its list and team parents.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID uint64, input TaskInput) error {
	if err := validateTaskInput(input); err != nil {
		return err
	}

	task := &models.Task{
		Name:       input.Name,
		Note:       input.Note,
		Priority:   input.Priority,
		IsComplete: input.IsComplete,
	}
	input.Parent.Apply(task)

	if _, err := s.tasks.Update(taskID, ownerID, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	s.invalidateReports(ctx, ownerID)
	return nil
}

// SetComplete flips only the completion flag.
func (s *TaskService) SetComplete(ctx context.Context, ownerID, taskID uint64, isComplete bool) error {
	if _, err := s.tasks.SetComplete(taskID, ownerID, isComplete); err != nil {
		return fmt.Errorf("failed to update completion: %w", err)
	}

	s.invalidateReports(ctx, ownerID)
	return nil
}

// Reorder applies the full post-drag arrangement atomically. Neither
// report embeds orderNo, so the invalidation set is empty.
func (s *TaskService) Reorder(ownerID uint64, updates []repository.OrderUpdate) error {
	if len(updates) == 0 {
		return ErrNoOrderUpdates
	}

	if err := s.tasks.Reorder(ownerID, updates); err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}

	return nil
}

// Delete removes a task owned by the user
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uint64) error {
	if _, err := s.tasks.Delete(taskID, ownerID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidateReports(ctx, ownerID)
	return nil
}

// invalidateReports purges both of the owner's report keys. Every task
// mutation can change an incomplete count in either report.
// Invalidation set: taskLists:<owner>, teamLists:<owner>
func (s *TaskService) invalidateReports(ctx context.Context, ownerID uint64) {
	keys := []string{
		cache.TaskListsKey(ownerID),
		cache.TeamListsKey(ownerID),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

func validateTaskInput(input TaskInput) error {
	if err := validateName(input.Name); err != nil {
		return err
	}
	if input.Priority < constants.MinPriority || input.Priority > constants.MaxPriority {
		return ErrInvalidPriority
	}
	return nil
}
