package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlerImpl) HandleGetNotifications(c *gin.Context) {
	notifications, err := h.notifications.ListNotifications(c, callerFrom(c))
	if err != nil {
		h.fail(c, err, "failed to list notifications")
		return
	}

	views := make([]notificationView, len(notifications))
	for i := range notifications {
		views[i] = newNotificationView(&notifications[i])
	}
	c.JSON(http.StatusOK, views)
}

func (h *handlerImpl) HandleGetUnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(c, callerFrom(c))
	if err != nil {
		h.fail(c, err, "failed to count unread notifications")
		return
	}
	c.JSON(http.StatusOK, count)
}

func (h *handlerImpl) HandleMarkNotificationRead(c *gin.Context) {
	err := h.notifications.MarkRead(c, callerFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) HandleMarkAllNotificationsRead(c *gin.Context) {
	_, err := h.notifications.MarkAllRead(c, callerFrom(c))
	if err != nil {
		h.fail(c, err, "failed to mark notifications read")
		return
	}
	c.Status(http.StatusNoContent)
}
