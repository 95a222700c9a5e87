package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskflow/internal/access"
)

// calendarWindow reads the optional startDate and endDate query
// parameters. A date-only endDate covers the whole day.
func calendarWindow(c *gin.Context) (access.Window, error) {
	var window access.Window
	if s := c.Query("startDate"); s != "" {
		from, _, err := parseDate(s)
		if err != nil {
			return window, err
		}
		window.From = &from
	}
	if s := c.Query("endDate"); s != "" {
		to, dateOnly, err := parseDate(s)
		if err != nil {
			return window, err
		}
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		window.To = &to
	}
	return window, nil
}

func (h *handlerImpl) HandleGetCalendarTasks(c *gin.Context) {
	window, err := calendarWindow(c)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse calendar window")
		abort(c, newBadRequestError(errInvalidQuery.Error()))
		return
	}

	tasks, err := h.tasks.ListCalendarTasks(c, callerFrom(c), window)
	if err != nil {
		h.fail(c, err, "failed to list calendar tasks")
		return
	}

	views := make([]calendarTaskView, len(tasks))
	for i := range tasks {
		views[i] = calendarTaskView{
			taskView: newTaskView(&tasks[i]),
			Start:    tasks[i].StartDate,
			End:      tasks[i].Until(),
		}
	}
	c.JSON(http.StatusOK, views)
}
