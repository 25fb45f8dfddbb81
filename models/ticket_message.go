package models

import "time"

// TicketMessage is append-only; rows are never edited or deleted.
type TicketMessage struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TicketID uint      `gorm:"not null;index" json:"ticket_id"`
	SenderID uint      `gorm:"not null" json:"sender_id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	SentAt   time.Time `gorm:"not null" json:"sent_at"`
}
