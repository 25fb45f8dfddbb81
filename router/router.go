package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"helpdesk/controllers"
	"helpdesk/middlewares"
	"helpdesk/models"
	"helpdesk/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Attachments are publicly served; tickets reference them by
	// relative path.
	r.Static("/attachments", "public/attachments")

	authCtrl := controllers.NewAuthController(db)
	userCtrl := controllers.NewUserController(db)
	ticketCtrl := controllers.NewTicketController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	reportCtrl := controllers.NewReportController(db)
	chatCtrl := controllers.NewChatController(services.GetGeminiService())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Credential endpoints get the strict limiter.
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", authCtrl.Logout)
		auth.GET("/profile", authCtrl.GetProfile)
		auth.PATCH("/profile", authCtrl.UpdateProfile)

		auth.GET("/tickets", ticketCtrl.ListTickets)
		auth.GET("/tickets/:ticket_id", ticketCtrl.GetTicket)
		auth.POST("/tickets", middlewares.RequireRoles(models.RoleCustomer, models.RoleAdmin), ticketCtrl.CreateTicket)
		auth.POST("/tickets/:ticket_id/messages", ticketCtrl.AddMessage)
		auth.POST("/tickets/:ticket_id/assign", middlewares.RequireRoles(models.RoleAdmin), ticketCtrl.AssignTicket)
		auth.PATCH("/tickets/:ticket_id/status", middlewares.RequireRoles(models.RoleAdmin), ticketCtrl.UpdateStatus)

		auth.GET("/notifications", notificationCtrl.ListNotifications)
		auth.POST("/notifications/:notification_id/read", notificationCtrl.MarkAsRead)

		auth.POST("/chat/ask", chatCtrl.Ask)

		admin := auth.Group("/admin")
		admin.Use(middlewares.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/users", userCtrl.GetAllUsers)
			admin.POST("/users", userCtrl.CreateUser)
			admin.GET("/users/:user_id", userCtrl.GetUser)
			admin.PATCH("/users/:user_id", userCtrl.UpdateUser)
			admin.DELETE("/users/:user_id", userCtrl.DeleteUser)

			admin.GET("/reports/summary", reportCtrl.GetSummary)
			admin.GET("/reports/top-personnel/pdf", reportCtrl.DownloadTopPersonnelReport)
		}
	}

	return r
}
