package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/heinhtoo/quicktask-api/internal/constants"
	apierrors "github.com/heinhtoo/quicktask-api/internal/errors"
	"github.com/heinhtoo/quicktask-api/internal/identity"
)

// RequireUser resolves the username query parameter to an owner id and
// stores it in the request context. A request without a resolvable username
// never reaches a handler; this is the entire authentication surface.
func RequireUser(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" || len(username) > constants.MaxNameLength {
			apierrors.BadRequest(c, "Invalid parameters")
			c.Abort()
			return
		}

		ownerID, err := resolver.Resolve(c.Request.Context(), username)
		if err != nil {
			if errors.Is(err, identity.ErrUnknownUser) {
				apierrors.Unauthorized(c, "Invalid user")
			} else {
				apierrors.OperationFailed(c, "Failed to resolve user")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOwnerID, ownerID)
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// GetOwnerID retrieves the resolved owner id from context
func GetOwnerID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyOwnerID)
	if !exists {
		return 0, false
	}

	ownerID, ok := value.(uint64)
	return ownerID, ok
}
