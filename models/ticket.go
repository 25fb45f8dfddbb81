package models

import "time"

const (
	StatusOpen   = "open"
	StatusSolved = "solved"
	StatusClosed = "closed"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Ticket references its creator and assignee by id only; callers resolve
// the users with a lookup when they need names.
type Ticket struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"type:varchar(100);not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Priority       string     `gorm:"type:varchar(20);not null" json:"priority"`
	Status         string     `gorm:"type:varchar(20);not null" json:"status"`
	AttachmentPath *string    `gorm:"type:varchar(255)" json:"attachment_path,omitempty"`
	CreatedByID    uint       `gorm:"not null;index" json:"created_by_id"`
	AssignedToID   *uint      `gorm:"index" json:"assigned_to_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusSolved, StatusClosed:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}
