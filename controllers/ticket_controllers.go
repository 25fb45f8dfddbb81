package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"helpdesk/models"
	"helpdesk/services"
	"helpdesk/utils"
)

type TicketController struct {
	DB *gorm.DB
}

func NewTicketController(db *gorm.DB) *TicketController {
	return &TicketController{DB: db}
}

// CreateTicket files a new ticket. Accepts multipart form data so an
// attachment can ride along; the ticket always starts open. Every admin
// gets a new-ticket notification, written in the same transaction.
func (tc *TicketController) CreateTicket(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	priority := c.PostForm("priority")

	fields := map[string]string{}
	if title == "" || len(title) > 100 {
		fields["title"] = "title is required and may be at most 100 characters"
	}
	if description == "" {
		fields["description"] = "description is required"
	}
	if !models.ValidPriority(priority) {
		fields["priority"] = "priority must be low, normal or high"
	}
	if len(fields) > 0 {
		utils.RespondFieldErrors(c, http.StatusBadRequest, fields)
		return
	}

	var attachmentPath *string
	if file, err := c.FormFile("attachment"); err == nil && file != nil {
		path, err := utils.SaveAttachment(c, file)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		attachmentPath = &path
	}

	userID := c.GetUint("user_id")

	ticket := models.Ticket{
		Title:          title,
		Description:    description,
		Priority:       priority,
		Status:         models.StatusOpen,
		AttachmentPath: attachmentPath,
		CreatedByID:    userID,
		CreatedAt:      time.Now(),
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}

		admins, err := services.FindAdmins(tx)
		if err != nil {
			return err
		}

		recipients := services.NewTicketRecipients(admins)
		return services.CreateNotifications(tx, recipients, models.NotificationNewTicket, ticket.ID)
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Ticket #%d created by user %d", ticket.ID, userID)

	utils.RespondJSON(c, http.StatusCreated, "Ticket created", ticket)
}

// ListTickets returns the tickets visible to the caller: all of them for
// an admin, created-by for a customer, assigned-to for personnel.
func (tc *TicketController) ListTickets(c *gin.Context) {
	userID := c.GetUint("user_id")
	role := c.GetString("role")

	query := tc.DB.Model(&models.Ticket{})
	switch role {
	case models.RoleCustomer:
		query = query.Where("created_by_id = ?", userID)
	case models.RolePersonel:
		query = query.Where("assigned_to_id = ?", userID)
	}

	var tickets []models.Ticket
	if err := query.Order("created_at DESC").Find(&tickets).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Tickets", tickets)
}

// GetTicket returns one ticket with its message thread. Non-admins only
// see tickets they created or are assigned to.
func (tc *TicketController) GetTicket(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	var ticket models.Ticket
	if err := tc.DB.First(&ticket, ticketID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ticket not found"))
		return
	}

	if !canAccessTicket(c, &ticket) {
		utils.RespondError(c, http.StatusForbidden, errors.New("access denied"))
		return
	}

	var messages []models.TicketMessage
	if err := tc.DB.Where("ticket_id = ?", ticket.ID).Order("sent_at ASC").Find(&messages).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Resolve sender names for the thread with a single lookup.
	senderIDs := make([]uint, 0, len(messages))
	for _, m := range messages {
		senderIDs = append(senderIDs, m.SenderID)
	}
	senderNames := map[uint]string{}
	if len(senderIDs) > 0 {
		var senders []models.User
		if err := tc.DB.Where("id IN ?", senderIDs).Find(&senders).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		for _, s := range senders {
			senderNames[s.ID] = s.FullName()
		}
	}

	type messageView struct {
		models.TicketMessage
		SenderName string `json:"sender_name"`
	}
	thread := make([]messageView, 0, len(messages))
	for _, m := range messages {
		thread = append(thread, messageView{TicketMessage: m, SenderName: senderNames[m.SenderID]})
	}

	utils.RespondJSON(c, http.StatusOK, "Ticket detail", gin.H{
		"ticket":   ticket,
		"messages": thread,
	})
}

// AssignTicket hands a ticket to a personnel user. Admin only (enforced
// on the route). The assignee and the creator each get a notification.
func (tc *TicketController) AssignTicket(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	var req struct {
		AssignedToID uint `json:"assigned_to_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var ticket models.Ticket
	if err := tc.DB.First(&ticket, ticketID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ticket not found"))
		return
	}

	var personel models.User
	if err := tc.DB.Where("id = ? AND role = ?", req.AssignedToID, models.RolePersonel).First(&personel).Error; err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("invalid assignee: user not found or not personnel"))
		return
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ticket).Update("assigned_to_id", personel.ID).Error; err != nil {
			return err
		}

		recipients := services.TicketAssignedRecipients(personel.ID, ticket.CreatedByID)
		return services.CreateNotifications(tx, recipients, models.NotificationTicketAssigned, ticket.ID)
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Ticket #%d assigned to user %d", ticket.ID, personel.ID)

	utils.RespondJSON(c, http.StatusOK, "Ticket assigned", gin.H{
		"ticket_id":      ticket.ID,
		"assigned_to_id": personel.ID,
	})
}

// AddMessage appends to the ticket thread. Only the creator, the current
// assignee or an admin may post. Closed tickets still accept messages.
func (tc *TicketController) AddMessage(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("message content cannot be empty"))
		return
	}

	var ticket models.Ticket
	if err := tc.DB.First(&ticket, ticketID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ticket not found"))
		return
	}

	if !canAccessTicket(c, &ticket) {
		utils.RespondError(c, http.StatusForbidden, errors.New("access denied"))
		return
	}

	userID := c.GetUint("user_id")

	message := models.TicketMessage{
		TicketID: ticket.ID,
		SenderID: userID,
		Content:  req.Content,
		SentAt:   time.Now(),
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		admins, err := services.FindAdmins(tx)
		if err != nil {
			return err
		}

		recipients := services.NewMessageRecipients(&ticket, userID, admins)
		return services.CreateNotifications(tx, recipients, models.NotificationNewMessage, ticket.ID)
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Message added", message)
}

// UpdateStatus sets a new ticket status. Admin only (enforced on the
// route). Closing stamps ClosedAt; marking solved notifies the creator,
// closing notifies nobody.
func (tc *TicketController) UpdateStatus(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("ticket_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ticket id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be open, solved or closed"))
		return
	}

	var ticket models.Ticket
	if err := tc.DB.First(&ticket, ticketID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("ticket not found"))
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusClosed {
		now := time.Now()
		updates["closed_at"] = &now
	}

	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ticket).Updates(updates).Error; err != nil {
			return err
		}

		if req.Status == models.StatusSolved {
			recipients := services.TicketUpdatedRecipients(ticket.CreatedByID)
			return services.CreateNotifications(tx, recipients, models.NotificationTicketUpdated, ticket.ID)
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Ticket #%d status set to %s", ticket.ID, req.Status)

	utils.RespondJSON(c, http.StatusOK, "Status updated", gin.H{
		"ticket_id": ticket.ID,
		"status":    req.Status,
	})
}

// canAccessTicket applies the role visibility rules: admins see all,
// customers their own, personnel their assignments.
func canAccessTicket(c *gin.Context, ticket *models.Ticket) bool {
	userID := c.GetUint("user_id")
	switch c.GetString("role") {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		return ticket.CreatedByID == userID
	case models.RolePersonel:
		return ticket.AssignedToID != nil && *ticket.AssignedToID == userID
	}
	return false
}
