package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/heinhtoo/quicktask-api/internal/errors"
	"github.com/heinhtoo/quicktask-api/internal/middleware"
	"github.com/heinhtoo/quicktask-api/internal/models"
	"github.com/heinhtoo/quicktask-api/internal/repository"
	"github.com/heinhtoo/quicktask-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// taskRequest is the create/update body. Type is the parent discriminator:
// isList selects between the list and team foreign keys, value carries the
// parent id.
type taskRequest struct {
	Name       string `json:"name" binding:"required"`
	Note       string `json:"note"`
	Priority   int    `json:"priority" binding:"required"`
	IsComplete bool   `json:"isComplete"`
	Type       struct {
		IsList *bool  `json:"isList" binding:"required"`
		Value  uint64 `json:"value" binding:"required"`
	} `json:"type" binding:"required"`
}

func (r taskRequest) toInput() services.TaskInput {
	input := services.TaskInput{
		Name:       r.Name,
		Note:       r.Note,
		Priority:   r.Priority,
		IsComplete: r.IsComplete,
	}

	if r.Type.IsList != nil && !*r.Type.IsList {
		input.Parent = models.TeamParent(r.Type.Value)
	} else {
		input.Parent = models.ListParent(r.Type.Value)
	}

	return input
}

// List returns the owner's visible tasks ordered by orderNo, optionally
// narrowed by the team or list query parameters
func (h *TaskHandler) List(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var teamName *string
	if team := c.Query("team"); team != "" {
		teamName = &team
	}

	var listID *uint64
	if list := c.Query("list"); list != "" {
		id, err := strconv.ParseUint(list, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid list ID")
			return
		}
		listID = &id
	}

	tasks, err := h.taskService.List(ownerID, teamName, listID)
	if err != nil {
		apierrors.OperationFailed(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Create creates a task attached to one list or one team
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid data")
		return
	}

	if err := h.taskService.Create(c.Request.Context(), ownerID, req.toInput()); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Created"})
}

// Update rewrites the task identified by the path id
func (h *TaskHandler) Update(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid data")
		return
	}

	if err := h.taskService.Update(c.Request.Context(), ownerID, taskID, req.toInput()); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// Complete sets only the completion flag of the task in the path
func (h *TaskHandler) Complete(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type CompleteRequest struct {
		IsComplete *bool `json:"isComplete" binding:"required"`
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid data")
		return
	}

	if err := h.taskService.SetComplete(c.Request.Context(), ownerID, taskID, *req.IsComplete); err != nil {
		apierrors.OperationFailed(c, "Failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// Reorder applies the full post-drag arrangement as one batch
func (h *TaskHandler) Reorder(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type OrderUpdateRequest struct {
		ID      uint64 `json:"id" binding:"required"`
		OrderNo int    `json:"orderNo"`
	}

	var req []OrderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid data")
		return
	}

	updates := make([]repository.OrderUpdate, len(req))
	for i, item := range req {
		updates[i] = repository.OrderUpdate{
			ID:      item.ID,
			OrderNo: item.OrderNo,
		}
	}

	if err := h.taskService.Reorder(ownerID, updates); err != nil {
		if errors.Is(err, services.ErrNoOrderUpdates) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.OperationFailed(c, "Failed to reorder tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// Delete removes the task identified by the id query parameter
func (h *TaskHandler) Delete(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := queryID(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), ownerID, taskID); err != nil {
		apierrors.OperationFailed(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameTooLong),
		errors.Is(err, services.ErrInvalidPriority):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.OperationFailed(c, "")
	}
}
