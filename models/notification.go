package models

import "time"

const (
	NotificationNewTicket      = "new_ticket"
	NotificationTicketAssigned = "ticket_assigned"
	NotificationNewMessage     = "new_message"
	NotificationTicketUpdated  = "ticket_updated"
)

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TicketID  uint      `gorm:"not null" json:"ticket_id"`
	Type      string    `gorm:"type:varchar(30);not null" json:"type"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
