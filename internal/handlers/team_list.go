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

type TeamListHandler struct {
	teamService *services.TeamService
}

func NewTeamListHandler(teamService *services.TeamService) *TeamListHandler {
	return &TeamListHandler{
		teamService: teamService,
	}
}

// Report returns teams the owner created or belongs to, with members and
// incomplete counts
func (h *TeamListHandler) Report(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	reports, err := h.teamService.Report(c.Request.Context(), ownerID)
	if err != nil {
		apierrors.OperationFailed(c, "Failed to fetch teams")
		return
	}

	c.JSON(http.StatusOK, reports)
}

// Create creates a team with the creator as its first member
func (h *TeamListHandler) Create(c *gin.Context) {
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

	if err := h.teamService.Create(c.Request.Context(), ownerID, req.Name); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Created"})
}

// Update renames a team identified by the id query parameter
func (h *TeamListHandler) Update(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, ok := queryID(c)
	if !ok {
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid data")
		return
	}

	if err := h.teamService.Rename(c.Request.Context(), ownerID, teamID, req.Name); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

// Delete removes a team identified by the id query parameter
func (h *TeamListHandler) Delete(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, ok := queryID(c)
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), ownerID, teamID); err != nil {
		apierrors.OperationFailed(c, "Failed to delete team")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// AddMembers idempotently adds members to the team in the path
func (h *TeamListHandler) AddMembers(c *gin.Context) {
	ownerID, exists := middleware.GetOwnerID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	type AddMembersRequest struct {
		MemberIDs []uint64 `json:"memberIds" binding:"required"`
	}

	var req AddMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid data")
		return
	}

	if err := h.teamService.AddMembers(c.Request.Context(), ownerID, teamID, req.MemberIDs); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Updated"})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameTooLong),
		errors.Is(err, services.ErrNoMemberIDs),
		errors.Is(err, services.ErrInvalidMember),
		errors.Is(err, services.ErrTeamNotFound):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotTeamCreator):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.OperationFailed(c, "")
	}
}
