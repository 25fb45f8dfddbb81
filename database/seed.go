package database

import (
	"time"

	"gorm.io/gorm"

	"helpdesk/models"
	"helpdesk/utils"
)

// Seed fills an empty database with one user per role plus a sample
// ticket thread, so a fresh install is immediately usable.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	password, err := utils.HashPassword("123456")
	if err != nil {
		return err
	}

	users := []models.User{
		{FirstName: "Admin", LastName: "User", Email: "admin@example.com", Password: password, Phone: "5551112233", Role: models.RoleAdmin},
		{FirstName: "Ali", LastName: "Yilmaz", Email: "ali@example.com", Password: password, Phone: "5552223344", Role: models.RolePersonel},
		{FirstName: "Ayse", LastName: "Kara", Email: "ayse@example.com", Password: password, Phone: "5553334455", Role: models.RoleCustomer},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	attachment := "/attachments/sample.png"
	assignee := users[1].ID
	ticket := models.Ticket{
		Title:          "Cannot reset my password",
		Description:    "The password reset email never arrives.",
		Priority:       models.PriorityNormal,
		Status:         models.StatusOpen,
		AttachmentPath: &attachment,
		CreatedByID:    users[2].ID,
		AssignedToID:   &assignee,
		CreatedAt:      time.Now(),
	}
	if err := db.Create(&ticket).Error; err != nil {
		return err
	}

	messages := []models.TicketMessage{
		{TicketID: ticket.ID, SenderID: users[2].ID, Content: "I want to reset my password but no email arrived.", SentAt: time.Now()},
		{TicketID: ticket.ID, SenderID: users[1].ID, Content: "Hello, I am looking into it right away.", SentAt: time.Now()},
	}
	if err := db.Create(&messages).Error; err != nil {
		return err
	}

	notifications := []models.Notification{
		{UserID: users[1].ID, TicketID: ticket.ID, Type: models.NotificationNewTicket, CreatedAt: time.Now()},
		{UserID: users[2].ID, TicketID: ticket.ID, Type: models.NotificationNewMessage, CreatedAt: time.Now()},
	}
	return db.Create(&notifications).Error
}
