package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
	"lexportal/internal/invitation"
)

// VerifyInvitation checks an invitation token and returns the page state.
// A missing or rejected token is terminal: the response carries the error
// message and there is nothing further the caller can do with it.
func VerifyInvitation(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		flow := invitation.NewFlow(services.APIClient(), services.GetLogger())
		flow.Start(c.Request.Context(), token)

		resp := models.InvitationResponse{State: string(flow.State())}

		if flow.State() == invitation.StateError {
			resp.Error = flow.ErrorMessage()
			status := http.StatusNotFound
			if flow.ErrorMessage() == invitation.MsgNoToken {
				status = http.StatusBadRequest
			}
			c.JSON(status, resp)
			return
		}

		if inv := flow.Invitation(); inv != nil {
			resp.Email = inv.Email
			resp.CaseTitle = inv.CaseTitle
			resp.ClientName = inv.ClientName
		}

		c.JSON(http.StatusOK, resp)
	}
}

// AcceptInvitation completes the invitation: validates the form locally,
// then creates the account upstream. Validation and backend rejections are
// recoverable; the caller keeps the form and can retry.
func AcceptInvitation(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AcceptInvitationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		flow := invitation.NewFlow(services.APIClient(), services.GetLogger())
		flow.Resume(req.Token)

		err := flow.Submit(c.Request.Context(), req.FullName, req.Password, req.ConfirmPassword)
		if err != nil {
			var vErr *invitation.ValidationError
			if errors.As(err, &vErr) {
				code := models.ErrCodePasswordMismatch
				if vErr.Message == invitation.MsgPasswordTooShort {
					code = models.ErrCodeWeakPassword
				}
				respondErrorCode(c, http.StatusBadRequest, code, vErr.Message)
				return
			}

			// Backend rejection: the flow is back at ready with a
			// user-facing message.
			c.JSON(http.StatusUnprocessableEntity, models.InvitationResponse{
				State: string(flow.State()),
				Error: flow.ErrorMessage(),
			})
			return
		}

		createAuditLog(services, "invitation_accepted", req.FullName, "",
			"Invitation accepted", getClientIP(c))

		c.JSON(http.StatusOK, models.InvitationResponse{
			State: string(flow.State()),
		})
	}
}
