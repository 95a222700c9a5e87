package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
)

type taskRequest struct {
	ProjectID   string              `json:"projectId"`
	Title       string              `json:"title" binding:"required,max=200"`
	Description *string             `json:"description" binding:"omitempty,max=2000"`
	StartDate   date                `json:"startDate"`
	DueDate     *date               `json:"dueDate"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	AssigneeIDs []string            `json:"assignedUserIds"`
}

func (r *taskRequest) params() services.TaskParams {
	return services.TaskParams{
		ProjectID:   r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate.Time,
		DueDate:     r.DueDate.ptr(),
		Status:      r.Status,
		Priority:    r.Priority,
		AssigneeIDs: r.AssigneeIDs,
	}
}

// statusRequest is the body accepted from members, who may only move a
// task they are assigned to between statuses.
type statusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind task")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	if req.ProjectID == "" {
		abort(c, newBadRequestError("projectId is required"))
		return
	}
	if req.StartDate.IsZero() {
		abort(c, newBadRequestError(errStartDateRequired.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, callerFrom(c), req.params())
	if err != nil {
		h.fail(c, err, "failed to create task")
		return
	}
	c.JSON(http.StatusCreated, newTaskView(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c, callerFrom(c), c.Query("projectId"))
	if err != nil {
		h.fail(c, err, "failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, newTaskViews(tasks))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	task, err := h.tasks.GetTask(c, callerFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to get task")
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

// HandleUpdateTask accepts the full task body from privileged callers.
// Members may send the same body, but only its status is applied.
func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	caller := callerFrom(c)

	var params services.TaskParams
	if caller.Privileged() {
		var req taskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn().
				Err(err).
				Msg("failed to bind task")
			abort(c, newBadRequestError(errInvalidRequestBody.Error()))
			return
		}
		if req.StartDate.IsZero() {
			abort(c, newBadRequestError(errStartDateRequired.Error()))
			return
		}
		params = req.params()
	} else {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn().
				Err(err).
				Msg("failed to bind task status")
			abort(c, newBadRequestError(errInvalidRequestBody.Error()))
			return
		}
		params.Status = req.Status
	}

	task, err := h.tasks.UpdateTask(c, caller, c.Param("id"), params)
	if err != nil {
		h.fail(c, err, "failed to update task")
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	err := h.tasks.DeleteTask(c, callerFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to delete task")
		return
	}
	c.Status(http.StatusNoContent)
}
