package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleGetTaskActivity(c *gin.Context) {
	logs, err := h.activity.ListTaskActivity(c, callerFrom(c), c.Param("taskId"))
	if err != nil {
		h.fail(c, err, "failed to list task activity")
		return
	}
	c.JSON(http.StatusOK, newActivityLogViews(logs))
}

func (h *handlerImpl) HandleGetProjectActivity(c *gin.Context) {
	logs, err := h.activity.ListProjectActivity(c, callerFrom(c), c.Param("projectId"))
	if err != nil {
		h.fail(c, err, "failed to list project activity")
		return
	}
	c.JSON(http.StatusOK, newActivityLogViews(logs))
}

// HandleGetRecentActivity reads an optional limit; the service clamps it.
func (h *handlerImpl) HandleGetRecentActivity(c *gin.Context) {
	var limit int
	if s := c.Query("limit"); s != "" {
		var err error
		limit, err = strconv.Atoi(s)
		if err != nil {
			abort(c, newBadRequestError(errInvalidQuery.Error()))
			return
		}
	}

	logs, err := h.activity.ListRecentActivity(c, callerFrom(c), limit)
	if err != nil {
		h.fail(c, err, "failed to list recent activity")
		return
	}
	c.JSON(http.StatusOK, newActivityLogViews(logs))
}
