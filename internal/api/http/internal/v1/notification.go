package v1

import (
	"net/http"
	"strconv"

	"github.com/venturenest/backend/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initNotificationRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications", h.userIdentityMiddleware)

	notifications.GET("", h.listNotifications)
	notifications.GET("/unread-count", h.unreadNotificationCount)
	notifications.POST("/mark-all-read", h.markAllNotificationsRead)
}

type notificationListResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

// @Summary Recent notifications
// @Tags Notifications
// @Description Most recent notifications for the authenticated user
// @ModuleID listNotifications
// @Accept  json
// @Produce  json
// @Param limit query int false "max rows, default 10"
// @Success 200 {object} notificationListResponse
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /notifications [get]
func (h *Handler) listNotifications(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	notifications, err := h.services.Notifications.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, notificationListResponse{Notifications: notifications})
}

type unreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// @Summary Unread notification count
// @Tags Notifications
// @ModuleID unreadNotificationCount
// @Accept  json
// @Produce  json
// @Success 200 {object} unreadCountResponse
// @Security UserAuth
// @Router /notifications/unread-count [get]
func (h *Handler) unreadNotificationCount(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	count, err := h.services.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, unreadCountResponse{UnreadCount: count})
}

// @Summary Mark all notifications read
// @Tags Notifications
// @ModuleID markAllNotificationsRead
// @Accept  json
// @Produce  json
// @Success 200
// @Security UserAuth
// @Router /notifications/mark-all-read [post]
func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.services.Notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
