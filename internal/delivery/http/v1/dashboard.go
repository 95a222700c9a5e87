package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleGetDashboardStats(c *gin.Context) {
	stats, err := h.dashboard.GetStats(c, callerFrom(c))
	if err != nil {
		h.fail(c, err, "failed to get dashboard stats")
		return
	}
	c.JSON(http.StatusOK, newDashboardView(stats))
}
