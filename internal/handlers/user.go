package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heinhtoo/quicktask-api/internal/dto"
	apierrors "github.com/heinhtoo/quicktask-api/internal/errors"
	"github.com/heinhtoo/quicktask-api/internal/services"
	"github.com/heinhtoo/quicktask-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register creates a user for a previously unseen username
func (h *UserHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameRequired),
			errors.Is(err, services.ErrUsernameTooLong),
			errors.Is(err, services.ErrUsernameTaken):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.OperationFailed(c, "Failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// List returns registered users for member pickers
func (h *UserHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userService.List(c.Request.Context(), params)
	if err != nil {
		apierrors.OperationFailed(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"pagination": params.Response(total),
	})
}
