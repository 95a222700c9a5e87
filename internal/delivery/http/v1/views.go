package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
)

// dateLayouts are tried in order when parsing client dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseDate accepts RFC 3339 timestamps as well as the zone-less forms
// sent by HTML date inputs, which are read as UTC. dateOnly reports
// whether s carried no time of day.
func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err = time.Parse(layout, s)
		if err == nil {
			return t.UTC(), layout == time.DateOnly, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("invalid date %q", s)
}

// date is a JSON time accepting every layout of parseDate.
type date struct {
	time.Time
}

func (d *date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, _, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d *date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// displayName is the single projection of a user onto a visible name.
func displayName(u models.UserRef) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

type userRefView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserRefView(u models.UserRef) userRefView {
	return userRefView{
		ID:    u.ID,
		Name:  displayName(u),
		Email: u.Email,
	}
}

type userView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Name:      displayName(u.Ref()),
		Roles:     u.Roles.Strings(),
		CreatedAt: u.CreatedAt,
	}
}

type projectView struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	StartDate   time.Time            `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
	Status      models.ProjectStatus `json:"status"`
	CreatedBy   userRefView          `json:"createdBy"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   *time.Time           `json:"updatedAt"`
}

func newProjectView(p *models.ProjectDetails) projectView {
	return projectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		CreatedBy:   newUserRefView(p.CreatedBy),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProjectViews(projects []models.ProjectDetails) []projectView {
	views := make([]projectView, len(projects))
	for i := range projects {
		views[i] = newProjectView(&projects[i])
	}
	return views
}

type taskView struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description"`
	StartDate   time.Time           `json:"startDate"`
	DueDate     *time.Time          `json:"dueDate"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	ProjectID   string              `json:"projectId"`
	ProjectName string              `json:"projectName"`
	CreatedBy   userRefView         `json:"createdBy"`
	Assignees   []userRefView       `json:"assignees"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   *time.Time          `json:"updatedAt"`
}

func newTaskView(t *models.TaskDetails) taskView {
	assignees := make([]userRefView, len(t.Assignees))
	for i, a := range t.Assignees {
		assignees[i] = newUserRefView(a)
	}
	return taskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		StartDate:   t.StartDate,
		DueDate:     t.DueDate,
		Status:      t.Status,
		Priority:    t.Priority,
		ProjectID:   t.ProjectID,
		ProjectName: t.ProjectName,
		CreatedBy:   newUserRefView(t.CreatedBy),
		Assignees:   assignees,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func newTaskViews(tasks []models.TaskDetails) []taskView {
	views := make([]taskView, len(tasks))
	for i := range tasks {
		views[i] = newTaskView(&tasks[i])
	}
	return views
}

type calendarTaskView struct {
	taskView
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type attachmentView struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	ContentType *string   `json:"contentType"`
	TaskID      string    `json:"taskId"`
	UploadedBy  string    `json:"uploadedByUserId"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func newAttachmentView(a *models.Attachment) attachmentView {
	return attachmentView{
		ID:          a.ID,
		FileName:    a.FileName,
		FileSize:    a.FileSize,
		ContentType: a.ContentType,
		TaskID:      a.TaskID,
		UploadedBy:  a.UploadedByUserID,
		UploadedAt:  a.UploadedAt,
	}
}

type notificationView struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Message     *string                 `json:"message"`
	Type        models.NotificationType `json:"type"`
	IsRead      bool                    `json:"isRead"`
	CreatedAt   time.Time               `json:"createdAt"`
	TaskID      *string                 `json:"taskId"`
	TaskTitle   *string                 `json:"taskTitle"`
	ProjectID   *string                 `json:"projectId"`
	ProjectName *string                 `json:"projectName"`
}

func newNotificationView(n *models.NotificationDetails) notificationView {
	return notificationView{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        n.Type,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
		TaskID:      n.TaskID,
		TaskTitle:   n.TaskTitle,
		ProjectID:   n.ProjectID,
		ProjectName: n.ProjectName,
	}
}

type activityLogView struct {
	ID          string              `json:"id"`
	Action      string              `json:"action"`
	Description *string             `json:"description"`
	Type        models.ActivityType `json:"type"`
	CreatedAt   time.Time           `json:"createdAt"`
	User        userRefView         `json:"user"`
	TaskID      *string             `json:"taskId"`
	ProjectID   *string             `json:"projectId"`
}

func newActivityLogViews(logs []models.ActivityLogDetails) []activityLogView {
	views := make([]activityLogView, len(logs))
	for i, l := range logs {
		views[i] = activityLogView{
			ID:          l.ID,
			Action:      l.Action,
			Description: l.Description,
			Type:        l.Type,
			CreatedAt:   l.CreatedAt,
			User:        newUserRefView(l.User),
			TaskID:      l.TaskID,
			ProjectID:   l.ProjectID,
		}
	}
	return views
}

type dashboardView struct {
	TotalProjects      int                          `json:"totalProjects"`
	TotalTasks         int                          `json:"totalTasks"`
	CompletedTasks     int                          `json:"completedTasks"`
	InProgressTasks    int                          `json:"inProgressTasks"`
	ProjectStatusStats map[models.ProjectStatus]int `json:"projectStatusStats"`
	TaskStatusStats    map[models.TaskStatus]int    `json:"taskStatusStats"`
	UpcomingTasks      []taskView                   `json:"upcomingTasks"`
	RecentActivities   []activityLogView            `json:"recentActivities"`
}

func newDashboardView(s *services.DashboardStats) dashboardView {
	return dashboardView{
		TotalProjects:      s.TotalProjects,
		TotalTasks:         s.TotalTasks,
		CompletedTasks:     s.CompletedTasks,
		InProgressTasks:    s.InProgressTasks,
		ProjectStatusStats: s.ProjectStatusStats,
		TaskStatusStats:    s.TaskStatusStats,
		UpcomingTasks:      newTaskViews(s.UpcomingTasks),
		RecentActivities:   newActivityLogViews(s.RecentActivities),
	}
}
