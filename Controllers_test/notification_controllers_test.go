package Controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"helpdesk/controllers"
	"helpdesk/middlewares"
	"helpdesk/models"
)

func setupNotificationRouter(db *gorm.DB) *gin.Engine {
	router := newTestEngine()
	notifCtrl := controllers.NewNotificationController(db)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/notifications", notifCtrl.ListNotifications)
		auth.POST("/notifications/:notification_id/read", notifCtrl.MarkAsRead)
	}
	return router
}

func TestListNotificationsNewestFirst(t *testing.T) {
	db := setupTestDB("notif_list")
	router := setupNotificationRouter(db)

	personel := seedUser(db, "Ali", "Yilmaz", "ali@example.com", models.RolePersonel)
	customer := seedUser(db, "Ayse", "Kara", "ayse@example.com", models.RoleCustomer)
	ticket := seedTicket(db, customer.ID, &personel.ID, models.StatusOpen)

	now := time.Now()
	db.Create(&models.Notification{UserID: customer.ID, TicketID: ticket.ID, Type: models.NotificationTicketAssigned, CreatedAt: now.Add(-2 * time.Hour)})
	db.Create(&models.Notification{UserID: customer.ID, TicketID: ticket.ID, Type: models.NotificationNewMessage, CreatedAt: now})
	db.Create(&models.Notification{UserID: personel.ID, TicketID: ticket.ID, Type: models.NotificationNewTicket, CreatedAt: now.Add(-time.Hour)})

	w := doJSON(router, "GET", "/notifications", nil, authHeader(customer))
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(w)
	notifs := resp["data"].([]interface{})
	assert.Len(t, notifs, 2)

	first := notifs[0].(map[string]interface{})
	second := notifs[1].(map[string]interface{})
	assert.Equal(t, models.NotificationNewMessage, first["type"])
	assert.Equal(t, models.NotificationTicketAssigned, second["type"])
}

func TestMarkAsReadOwnershipCheck(t *testing.T) {
	db := setupTestDB("notif_read")
	router := setupNotificationRouter(db)

	personel := seedUser(db, "Ali", "Yilmaz", "ali@example.com", models.RolePersonel)
	customer := seedUser(db, "Ayse", "Kara", "ayse@example.com", models.RoleCustomer)
	ticket := seedTicket(db, customer.ID, &personel.ID, models.StatusOpen)

	notif := models.Notification{UserID: customer.ID, TicketID: ticket.ID, Type: models.NotificationNewMessage, CreatedAt: time.Now()}
	db.Create(&notif)

	// Another user cannot flip the flag; the row looks like it does not
	// exist.
	w := doJSON(router, "POST", "/notifications/1/read", nil, authHeader(personel))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var reloaded models.Notification
	db.First(&reloaded, notif.ID)
	assert.False(t, reloaded.IsRead)

	// The owner can.
	w = doJSON(router, "POST", "/notifications/1/read", nil, authHeader(customer))
	assert.Equal(t, http.StatusOK, w.Code)

	db.First(&reloaded, notif.ID)
	assert.True(t, reloaded.IsRead)
}
