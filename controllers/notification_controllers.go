package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"helpdesk/models"
	"helpdesk/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ListNotifications returns the caller's notifications, newest first.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifs []models.Notification
	if err := nc.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifs)
}

// MarkAsRead flips the read flag. The row must belong to the caller; a
// foreign notification answers 404 rather than leaking its existence.
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	notifID, err := strconv.Atoi(c.Param("notification_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid notification id"))
		return
	}

	userID := c.GetUint("user_id")

	var notif models.Notification
	if err := nc.DB.Where("id = ? AND user_id = ?", notifID, userID).First(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	if err := nc.DB.Model(&notif).Update("is_read", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", gin.H{
		"notification_id": notif.ID,
		"ticket_id":       notif.TicketID,
	})
}
