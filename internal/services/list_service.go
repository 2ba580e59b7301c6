package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/heinhtoo/quicktask-api/internal/cache"
	"github.com/heinhtoo/quicktask-api/internal/constants"
	"github.com/heinhtoo/quicktask-api/internal/dto"
	"github.com/heinhtoo/quicktask-api/internal/logger"
	"github.com/heinhtoo/quicktask-api/internal/models"
	"github.com/heinhtoo/quicktask-api/internal/repository"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name must be at most 200 characters")
)

// ListService handles task list business logic and the per-owner task-list
// report.
type ListService struct {
	lists repository.TaskListRepository
	cache cache.Cache
}

// NewListService creates a new ListService
func NewListService(lists repository.TaskListRepository, c cache.Cache) *ListService {
	return &ListService{
		lists: lists,
		cache: c,
	}
}

// Report returns every list owned by the user with its incomplete task
// count, newest list first, read through the cache.
func (s *ListService) Report(ctx context.Context, ownerID uint64) ([]dto.TaskListReport, error) {
	key := cache.TaskListsKey(ownerID)

	if value, err := s.cache.Get(ctx, key); err == nil {
		var cached []dto.TaskListReport
		if unmarshalErr := json.Unmarshal([]byte(value), &cached); unmarshalErr == nil {
			return cached, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("task list report cache read failed", "owner_id", ownerID, "error", err)
	}

	rows, err := s.lists.Report(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build task list report: %w", err)
	}

	reports := dto.ToTaskListReports(rows)

	if value, err := json.Marshal(reports); err == nil {
		if setErr := s.cache.Set(ctx, key, string(value)); setErr != nil {
			logger.Warn("task list report cache write failed", "owner_id", ownerID, "error", setErr)
		}
	}

	return reports, nil
}

// Create creates a task list owned by the user
func (s *ListService) Create(ctx context.Context, ownerID uint64, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	list := &models.TaskList{
		Name:            name,
		CreatedByUserID: ownerID,
	}
	if err := s.lists.Create(list); err != nil {
		return fmt.Errorf("failed to create task list: %w", err)
	}

	// Invalidation set: taskLists:<owner>
	s.invalidate(ctx, cache.TaskListsKey(ownerID))
	return nil
}

// Rename updates the list name. A zero-row match (unknown id or foreign
// owner) is indistinguishable from success by contract.
func (s *ListService) Rename(ctx context.Context, ownerID, listID uint64, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	if _, err := s.lists.Rename(listID, ownerID, name); err != nil {
		return fmt.Errorf("failed to rename task list: %w", err)
	}

	// Invalidation set: taskLists:<owner>
	s.invalidate(ctx, cache.TaskListsKey(ownerID))
	return nil
}

// Delete removes the list; its tasks survive detached.
func (s *ListService) Delete(ctx context.Context, ownerID, listID uint64) error {
	if _, err := s.lists.Delete(listID, ownerID); err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}

	// Invalidation set: taskLists:<owner>
	s.invalidate(ctx, cache.TaskListsKey(ownerID))
	return nil
}

func (s *ListService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if len(name) > constants.MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
