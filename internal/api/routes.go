package api

import (
	"lexportal/internal/api/handlers"
	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/middlewares"
	"lexportal/internal/roles"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes with proper middleware
func SetupRoutes(router *gin.Engine, services interfaces.Services) {
	cfg := services.GetConfig()

	// Global middleware
	router.Use(middlewares.Recovery())
	router.Use(middlewares.CORS(cfg.API.CORS))
	router.Use(middlewares.Security())
	router.Use(middlewares.RequestLogging(services.GetLogger()))
	router.Use(middlewares.RateLimit(cfg.API.RateLimit, cfg.API.BurstLimit))

	// Health check (no auth required)
	router.GET("/health", handlers.HealthCheck(services))
	router.GET("/ping", handlers.HealthCheck(services))
	router.GET("/status", handlers.GetSystemStatus(services))

	setupAuthRoutes(router, services)
	setupInvitationRoutes(router, services)
	setupFirmRoutes(router, services)
	setupPortalRoutes(router, services)
	setupWebRoutes(router, services)

	// Static file serving
	router.Static("/static", "./web/static")
	router.LoadHTMLGlob("web/templates/*")
}

// setupAuthRoutes configures the session lifecycle endpoints.
func setupAuthRoutes(router *gin.Engine, services interfaces.Services) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", handlers.Login(services))
		auth.POST("/logout", handlers.Logout(services))
		auth.POST("/register", handlers.Register(services))
		auth.POST("/forgot-password", handlers.ForgotPassword(services))
		auth.POST("/reset-password", handlers.ResetPassword(services))
		auth.GET("/session", handlers.GetSession(services))

		// Any authenticated role
		me := auth.Group("/")
		me.Use(middlewares.Guard(services))
		{
			me.GET("/me", handlers.Me(services))
			me.PUT("/me", handlers.UpdateProfile(services))
			me.PUT("/change-password", handlers.ChangePassword(services))
		}
	}
}

// setupInvitationRoutes configures the public invitation endpoints. They
// run without a session: the invitee has no account yet.
func setupInvitationRoutes(router *gin.Engine, services interfaces.Services) {
	inv := router.Group("/api/invitations")
	{
		inv.POST("/accept", handlers.AcceptInvitation(services))
		inv.GET("/:token", handlers.VerifyInvitation(services))
	}
}

// setupFirmRoutes configures the staff-only API. Owners and lawyers share
// the same surface.
func setupFirmRoutes(router *gin.Engine, services interfaces.Services) {
	firm := router.Group("/api")
	firm.Use(middlewares.Guard(services, roles.Owner, roles.Lawyer))
	{
		clients := firm.Group("/clients")
		{
			clients.GET("", handlers.ListClients(services))
			clients.POST("", handlers.CreateClient(services))
			clients.GET("/:id", handlers.GetClient(services))
			clients.PUT("/:id", handlers.UpdateClient(services))
			clients.DELETE("/:id", handlers.DeleteClient(services))
		}

		cases := firm.Group("/cases")
		{
			cases.GET("", handlers.ListCases(services))
			cases.POST("", handlers.CreateCase(services))
			cases.GET("/:id", handlers.GetCase(services))
			cases.PUT("/:id", handlers.UpdateCase(services))
			cases.DELETE("/:id", handlers.DeleteCase(services))
			cases.GET("/:id/updates", handlers.ListCaseUpdates(services))
			cases.POST("/:id/updates", handlers.AddCaseUpdate(services))
		}

		calendar := firm.Group("/calendar-events")
		{
			calendar.GET("", handlers.ListCalendarEvents(services))
			calendar.POST("", handlers.CreateCalendarEvent(services))
			calendar.PUT("/:id", handlers.UpdateCalendarEvent(services))
			calendar.DELETE("/:id", handlers.DeleteCalendarEvent(services))
		}

		billing := firm.Group("/billing")
		{
			billing.GET("/invoices", handlers.ListInvoices(services))
			billing.POST("/invoices", handlers.CreateInvoice(services))
			billing.GET("/invoices/:id", handlers.GetInvoice(services))
			billing.GET("/payments", handlers.ListPayments(services))
			billing.POST("/payments", handlers.RecordPayment(services))
		}

		dashboard := firm.Group("/dashboard")
		{
			dashboard.GET("/summary", handlers.GetDashboardSummary(services))
			dashboard.GET("/upcoming", handlers.GetDashboardUpcoming(services))
			dashboard.GET("/activity", handlers.GetDashboardActivity(services))
		}
	}

	audit := router.Group("/api/audit")
	audit.Use(middlewares.Guard(services, roles.Owner))
	{
		audit.GET("/logs", handlers.GetAuditLogs(services))
	}
}

// setupPortalRoutes configures the client-only API.
func setupPortalRoutes(router *gin.Engine, services interfaces.Services) {
	portal := router.Group("/api/portal")
	portal.Use(middlewares.Guard(services, roles.Client))
	{
		portal.GET("/cases", handlers.PortalCases(services))
		portal.GET("/cases/:id/updates", handlers.PortalCaseUpdates(services))
		portal.GET("/invoices", handlers.PortalInvoices(services))
	}

	ws := router.Group("/ws")
	ws.Use(middlewares.Guard(services))
	{
		ws.GET("/notifications", handlers.NotificationsWebSocket(services))
	}
}

// setupWebRoutes configures the HTML pages. Guarded pages redirect to the
// login form when there is no valid session, and to the role's home when
// the role does not match.
func setupWebRoutes(router *gin.Engine, services interfaces.Services) {
	router.GET(roles.LoginRoute, handlers.WebLoginPage(services))
	router.GET("/invitacion", handlers.WebInvitationPage(services))

	dashboard := router.Group("/dashboard")
	dashboard.Use(middlewares.Guard(services, roles.Owner, roles.Lawyer))
	{
		dashboard.GET("", handlers.WebDashboard(services))
	}

	portal := router.Group("/portal-cliente")
	portal.Use(middlewares.Guard(services, roles.Client))
	{
		portal.GET("", handlers.WebClientPortal(services))
	}
}
