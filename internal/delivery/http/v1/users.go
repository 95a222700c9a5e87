package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
)

func (h *handlerImpl) HandleGetUsers(c *gin.Context) {
	users, err := h.users.ListUsersWithRoles(c, callerFrom(c))
	if err != nil {
		h.fail(c, err, "failed to list users")
		return
	}

	views := make([]userView, len(users))
	for i := range users {
		views[i] = newUserView(&users[i])
	}
	c.JSON(http.StatusOK, views)
}

type changeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *handlerImpl) HandleChangeUserRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind role")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		abort(c, newBadRequestError(services.ErrInvalidRole.Error()))
		return
	}

	_, err = h.users.ChangeRole(c, callerFrom(c), c.Param("userId"), role)
	if err != nil {
		h.fail(c, err, "failed to change user role")
		return
	}
	c.Status(http.StatusNoContent)
}
