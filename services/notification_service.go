package services

import (
	"time"

	"gorm.io/gorm"

	"helpdesk/models"
)

// Notification fan-out. Recipient derivation is kept separate from
// persistence so the rules can be tested without a database. Persistence
// runs on the transaction handle of the mutation that caused the event,
// so a failed fan-out rolls the mutation back with it.

// NewTicketRecipients: every admin.
func NewTicketRecipients(admins []models.User) []uint {
	ids := make([]uint, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.ID)
	}
	return dedupe(ids)
}

// TicketAssignedRecipients: the assignee and the ticket creator.
func TicketAssignedRecipients(assigneeID, creatorID uint) []uint {
	return dedupe([]uint{assigneeID, creatorID})
}

// NewMessageRecipients: ticket creator, current assignee and every admin,
// minus the sender, one notification per recipient.
func NewMessageRecipients(ticket *models.Ticket, senderID uint, admins []models.User) []uint {
	var ids []uint
	if ticket.CreatedByID != senderID {
		ids = append(ids, ticket.CreatedByID)
	}
	if ticket.AssignedToID != nil && *ticket.AssignedToID != senderID {
		ids = append(ids, *ticket.AssignedToID)
	}
	for _, admin := range admins {
		if admin.ID != senderID {
			ids = append(ids, admin.ID)
		}
	}
	return dedupe(ids)
}

// TicketUpdatedRecipients: the creator only. Emitted when a ticket is
// marked solved; closing a ticket notifies nobody.
func TicketUpdatedRecipients(creatorID uint) []uint {
	return []uint{creatorID}
}

// CreateNotifications persists one unread row per recipient on tx.
func CreateNotifications(tx *gorm.DB, recipients []uint, notifType string, ticketID uint) error {
	now := time.Now()
	for _, userID := range recipients {
		notif := models.Notification{
			UserID:    userID,
			TicketID:  ticketID,
			Type:      notifType,
			IsRead:    false,
			CreatedAt: now,
		}
		if err := tx.Create(&notif).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindAdmins loads every admin user on the given handle.
func FindAdmins(tx *gorm.DB) ([]models.User, error) {
	var admins []models.User
	if err := tx.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
