package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"helpdesk/controllers"
	"helpdesk/middlewares"
	"helpdesk/models"
)

func setupReportRouter(db *gorm.DB) *gin.Engine {
	router := newTestEngine()
	reportCtrl := controllers.NewReportController(db)
	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.Use(middlewares.RequireRoles(models.RoleAdmin))
	{
		auth.GET("/reports/summary", reportCtrl.GetSummary)
		auth.GET("/reports/top-personnel/pdf", reportCtrl.DownloadTopPersonnelReport)
	}
	return router
}

// seedReportFixture builds 10 tickets (6 open, 3 solved, 1 closed) with
// two personnel carrying 4 and 6 assignments.
func seedReportFixture(db *gorm.DB) (admin, busy, quiet models.User) {
	admin = seedUser(db, "Admin", "User", "admin@example.com", models.RoleAdmin)
	quiet = seedUser(db, "Ali", "Yilmaz", "ali@example.com", models.RolePersonel)
	busy = seedUser(db, "Veli", "Demir", "veli@example.com", models.RolePersonel)
	customer := seedUser(db, "Ayse", "Kara", "ayse@example.com", models.RoleCustomer)

	statuses := []string{
		models.StatusOpen, models.StatusOpen, models.StatusOpen,
		models.StatusOpen, models.StatusOpen, models.StatusOpen,
		models.StatusSolved, models.StatusSolved, models.StatusSolved,
		models.StatusClosed,
	}
	for i, status := range statuses {
		var assignee *uint
		if i < 6 {
			assignee = &busy.ID
		} else {
			assignee = &quiet.ID
		}
		seedTicket(db, customer.ID, assignee, status)
	}
	return admin, busy, quiet
}

func TestReportSummary(t *testing.T) {
	db := setupTestDB("report_summary")
	router := setupReportRouter(db)

	admin, busy, quiet := seedReportFixture(db)

	w := doJSON(router, "GET", "/reports/summary", nil, authHeader(admin))
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody(w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["total_tickets"])
	assert.Equal(t, float64(6), data["open_tickets"])
	assert.Equal(t, float64(3), data["solved_tickets"])

	top := data["top_personnel"].([]interface{})
	assert.Len(t, top, 2)

	first := top[0].(map[string]interface{})
	second := top[1].(map[string]interface{})
	assert.Equal(t, float64(busy.ID), first["id"])
	assert.Equal(t, float64(6), first["assigned_count"])
	assert.Equal(t, float64(quiet.ID), second["id"])
	assert.Equal(t, float64(4), second["assigned_count"])
}

func TestReportForbiddenForNonAdmins(t *testing.T) {
	db := setupTestDB("report_forbidden")
	router := setupReportRouter(db)

	customer := seedUser(db, "Ayse", "Kara", "ayse@example.com", models.RoleCustomer)

	w := doJSON(router, "GET", "/reports/summary", nil, authHeader(customer))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDownloadTopPersonnelReport(t *testing.T) {
	db := setupTestDB("report_pdf")
	router := setupReportRouter(db)

	admin, _, _ := seedReportFixture(db)

	w := doJSON(router, "GET", "/reports/top-personnel/pdf", nil, authHeader(admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "TopPersonnelReport.pdf")
	assert.True(t, w.Body.Len() > 0)
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}
