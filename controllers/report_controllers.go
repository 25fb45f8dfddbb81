package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"helpdesk/models"
	"helpdesk/services"
	"helpdesk/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type topPersonnelRow struct {
	ID            uint   `json:"id"`
	FirstName     string `json:"-"`
	LastName      string `json:"-"`
	Name          string `json:"name" gorm:"-"`
	AssignedCount int64  `json:"assigned_count"`
}

// topPersonnel ranks personnel by assigned-ticket count descending, ties
// broken by ascending user id, truncated to the top five.
func (rc *ReportController) topPersonnel() ([]topPersonnelRow, error) {
	var rows []topPersonnelRow
	err := rc.DB.Model(&models.User{}).
		Select("users.id, users.first_name, users.last_name, COUNT(tickets.id) AS assigned_count").
		Joins("LEFT JOIN tickets ON tickets.assigned_to_id = users.id").
		Where("users.role = ?", models.RolePersonel).
		Group("users.id, users.first_name, users.last_name").
		Order("assigned_count DESC, users.id ASC").
		Limit(5).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Name = rows[i].FirstName + " " + rows[i].LastName
	}
	return rows, nil
}

// GetSummary returns ticket totals and the top-personnel ranking.
func (rc *ReportController) GetSummary(c *gin.Context) {
	var total, open, solved int64
	if err := rc.DB.Model(&models.Ticket{}).Count(&total).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := rc.DB.Model(&models.Ticket{}).Where("status = ?", models.StatusOpen).Count(&open).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := rc.DB.Model(&models.Ticket{}).Where("status = ?", models.StatusSolved).Count(&solved).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	top, err := rc.topPersonnel()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Report summary", gin.H{
		"total_tickets":  total,
		"open_tickets":   open,
		"solved_tickets": solved,
		"top_personnel":  top,
	})
}

// DownloadTopPersonnelReport renders the ranking as a PDF, one section
// per personnel with a table of their assigned tickets.
func (rc *ReportController) DownloadTopPersonnelReport(c *gin.Context) {
	top, err := rc.topPersonnel()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	report := make([]services.PersonnelReport, 0, len(top))
	for _, row := range top {
		var tickets []models.Ticket
		if err := rc.DB.Where("assigned_to_id = ?", row.ID).Order("created_at ASC").Find(&tickets).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}

		entry := services.PersonnelReport{Name: row.Name}
		for _, t := range tickets {
			entry.Tickets = append(entry.Tickets, services.ReportTicket{
				Title:     t.Title,
				Status:    t.Status,
				Priority:  t.Priority,
				CreatedAt: t.CreatedAt,
			})
		}
		report = append(report, entry)
	}

	pdf, err := services.RenderTopPersonnelPDF(report)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="TopPersonnelReport.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
