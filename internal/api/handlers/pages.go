package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/invitation"
)

// WebLoginPage renders the login form.
func WebLoginPage(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title": "Iniciar sesión",
		})
	}
}

// WebDashboard serves the firm dashboard page.
func WebDashboard(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"title": "Panel del despacho",
		})
	}
}

// WebClientPortal serves the client portal page.
func WebClientPortal(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "portal.html", gin.H{
			"title": "Portal del cliente",
		})
	}
}

// WebInvitationPage renders the invitation acceptance page. The token is
// verified server-side so the page opens directly in its resolved state.
func WebInvitationPage(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")

		flow := invitation.NewFlow(services.APIClient(), services.GetLogger())
		flow.Start(c.Request.Context(), token)

		data := gin.H{
			"title": "Invitación",
			"state": string(flow.State()),
			"token": token,
		}

		if flow.State() == invitation.StateError {
			data["error"] = flow.ErrorMessage()
		} else if inv := flow.Invitation(); inv != nil {
			data["email"] = inv.Email
			data["case_title"] = inv.CaseTitle
			data["client_name"] = inv.ClientName
		}

		c.HTML(http.StatusOK, "invitation.html", data)
	}
}
