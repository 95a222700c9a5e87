package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskflow/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleMe(c *gin.Context)
	HandleListAssignableUsers(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateProject(c *gin.Context)
	HandleGetProjects(c *gin.Context)
	HandleGetProject(c *gin.Context)
	HandleUpdateProject(c *gin.Context)
	HandleDeleteProject(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
	HandleGetCalendarTasks(c *gin.Context)

	HandleGetDashboardStats(c *gin.Context)

	HandleUploadAttachment(c *gin.Context)
	HandleGetTaskAttachments(c *gin.Context)
	HandleDownloadAttachment(c *gin.Context)
	HandleDeleteAttachment(c *gin.Context)

	HandleGetNotifications(c *gin.Context)
	HandleGetUnreadCount(c *gin.Context)
	HandleMarkNotificationRead(c *gin.Context)
	HandleMarkAllNotificationsRead(c *gin.Context)

	HandleGetTaskActivity(c *gin.Context)
	HandleGetProjectActivity(c *gin.Context)
	HandleGetRecentActivity(c *gin.Context)

	HandleGetUsers(c *gin.Context)
	HandleChangeUserRole(c *gin.Context)
}

// Services groups the dependencies of the handler.
type Services struct {
	Auth          services.AuthService
	Sessions      services.SessionService
	Users         services.UserService
	Projects      services.ProjectService
	Tasks         services.TaskService
	Attachments   services.AttachmentService
	Notifications services.NotificationService
	Activity      services.ActivityService
	Dashboard     services.DashboardService
}

type handlerImpl struct {
	logger        zerolog.Logger
	auth          services.AuthService
	sessions      services.SessionService
	users         services.UserService
	projects      services.ProjectService
	tasks         services.TaskService
	attachments   services.AttachmentService
	notifications services.NotificationService
	activity      services.ActivityService
	dashboard     services.DashboardService
	maxUploadSize int64
}

func New(
	logger zerolog.Logger,
	svc Services,
	maxUploadSize int64,
) Handler {
	return &handlerImpl{
		logger:        logger,
		auth:          svc.Auth,
		sessions:      svc.Sessions,
		users:         svc.Users,
		projects:      svc.Projects,
		tasks:         svc.Tasks,
		attachments:   svc.Attachments,
		notifications: svc.Notifications,
		activity:      svc.Activity,
		dashboard:     svc.Dashboard,
		maxUploadSize: maxUploadSize,
	}
}
