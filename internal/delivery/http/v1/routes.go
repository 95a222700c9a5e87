package v1

import "github.com/gin-gonic/gin"

// Register mounts every v1 route on router.
func Register(router gin.IRouter, h Handler) {
	authRouter := router.Group("/auth")
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/refresh", h.HandleRefresh)
	authRouter.POST("/register", h.HandleRegister)
	authRouter.POST("/logout", h.HandleAuthMiddleware, h.HandleLogout)
	authRouter.GET("/me", h.HandleAuthMiddleware, h.HandleMe)
	authRouter.GET("/users", h.HandleAuthMiddleware, h.HandleListAssignableUsers)

	router = router.Group("", h.HandleAuthMiddleware)

	projectsRouter := router.Group("/projects")
	projectsRouter.GET("", h.HandleGetProjects)
	projectsRouter.POST("", h.HandleCreateProject)
	projectsRouter.GET("/:id", h.HandleGetProject)
	projectsRouter.PUT("/:id", h.HandleUpdateProject)
	projectsRouter.DELETE("/:id", h.HandleDeleteProject)

	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)

	router.GET("/calendar/tasks", h.HandleGetCalendarTasks)
	router.GET("/dashboard/stats", h.HandleGetDashboardStats)

	attachmentsRouter := router.Group("/attachments")
	attachmentsRouter.POST("/:taskId", h.HandleUploadAttachment)
	attachmentsRouter.GET("/task/:taskId", h.HandleGetTaskAttachments)
	attachmentsRouter.GET("/:id", h.HandleDownloadAttachment)
	attachmentsRouter.GET("/:id/download", h.HandleDownloadAttachment)
	attachmentsRouter.DELETE("/:id", h.HandleDeleteAttachment)

	notificationsRouter := router.Group("/notifications")
	notificationsRouter.GET("", h.HandleGetNotifications)
	notificationsRouter.GET("/unread-count", h.HandleGetUnreadCount)
	notificationsRouter.PUT("/mark-all-read", h.HandleMarkAllNotificationsRead)
	notificationsRouter.PUT("/:id/read", h.HandleMarkNotificationRead)

	activityRouter := router.Group("/activitylogs")
	activityRouter.GET("/task/:taskId", h.HandleGetTaskActivity)
	activityRouter.GET("/project/:projectId", h.HandleGetProjectActivity)
	activityRouter.GET("/recent", h.HandleGetRecentActivity)

	usersRouter := router.Group("/users")
	usersRouter.GET("", h.HandleGetUsers)
	usersRouter.PUT("/:userId/role", h.HandleChangeUserRole)
}
