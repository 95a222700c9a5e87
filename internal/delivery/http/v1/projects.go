package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
)

var errStartDateRequired = errors.New("startDate is required")

type projectRequest struct {
	Name        string               `json:"name" binding:"required,max=200"`
	Description *string              `json:"description" binding:"omitempty,max=1000"`
	StartDate   date                 `json:"startDate"`
	EndDate     *date                `json:"endDate"`
	Status      models.ProjectStatus `json:"status"`
}

func (r *projectRequest) params() services.ProjectParams {
	return services.ProjectParams{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate.Time,
		EndDate:     r.EndDate.ptr(),
		Status:      r.Status,
	}
}

func (h *handlerImpl) bindProject(c *gin.Context) (*projectRequest, bool) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind project")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return nil, false
	}
	if req.StartDate.IsZero() {
		abort(c, newBadRequestError(errStartDateRequired.Error()))
		return nil, false
	}
	return &req, true
}

func (h *handlerImpl) HandleCreateProject(c *gin.Context) {
	req, ok := h.bindProject(c)
	if !ok {
		return
	}

	project, err := h.projects.CreateProject(c, callerFrom(c), req.params())
	if err != nil {
		h.fail(c, err, "failed to create project")
		return
	}
	c.JSON(http.StatusCreated, newProjectView(project))
}

func (h *handlerImpl) HandleGetProjects(c *gin.Context) {
	projects, err := h.projects.ListProjects(c, callerFrom(c))
	if err != nil {
		h.fail(c, err, "failed to list projects")
		return
	}
	c.JSON(http.StatusOK, newProjectViews(projects))
}

func (h *handlerImpl) HandleGetProject(c *gin.Context) {
	project, err := h.projects.GetProject(c, callerFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to get project")
		return
	}
	c.JSON(http.StatusOK, newProjectView(project))
}

func (h *handlerImpl) HandleUpdateProject(c *gin.Context) {
	req, ok := h.bindProject(c)
	if !ok {
		return
	}

	project, err := h.projects.UpdateProject(c, callerFrom(c), c.Param("id"), req.params())
	if err != nil {
		h.fail(c, err, "failed to update project")
		return
	}
	c.JSON(http.StatusOK, newProjectView(project))
}

func (h *handlerImpl) HandleDeleteProject(c *gin.Context) {
	err := h.projects.DeleteProject(c, callerFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}
