package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/heinhtoo/quicktask-api/internal/errors"
	"github.com/heinhtoo/quicktask-api/internal/middleware"
	"github.com/heinhtoo/quicktask-api/internal/services"
)

type TaskListHandler struct {
	listService *services.ListService
}

func NewTaskListHandler(listService *services.ListService) *TaskListHandler {
	return &TaskListHandler{
		listService: listService,
	}
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// Report returns the owner's task lists with incomplete counts
func (h *TaskListHandler) Report(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	reports, err := h.listService.Report(c.Request.Context(), ownerID)
	if err != nil {
		apierrors.OperationFailed(c, "Failed to fetch task lists")
		return
	}

	c.JSON(http.StatusOK, reports)
}

// Create creates a task list
func (h *TaskListHandler) Create(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid data")
		return
	}

	if err := h.listService.Create(c.Request.Context(), ownerID, req.Name); err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Created"})
}

// Update renames a task list identified by the id query parameter
func (h *TaskListHandler) Update(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	listID, ok := queryID(c)
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid data")
		return
	}

	if err := h.listService.Rename(c.Request.Context(), ownerID, listID, req.Name); err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// Delete removes a task list identified by the id query parameter
func (h *TaskListHandler) Delete(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	listID, ok := queryID(c)
	if !ok {
		return
	}

	if err := h.listService.Delete(c.Request.Context(), ownerID, listID); err != nil {
		apierrors.OperationFailed(c, "Failed to delete task list")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func respondListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameTooLong):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.OperationFailed(c, "")
	}
}

// queryID parses the id query parameter shared by the list and team
// endpoints. It writes the 400 response itself on failure.
func queryID(c *gin.Context) (uint64, bool) {
	idStr := c.Query("id")
	if idStr == "" {
		apierrors.BadRequest(c, "Invalid parameters")
		return 0, false
	}

	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid parameters")
		return 0, false
	}

	return id, true
}
