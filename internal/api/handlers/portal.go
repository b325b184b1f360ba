package handlers

import (
	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
)

// Portal handlers serve the client-facing area. The backend scopes every
// response to the authenticated client, so they take no identifiers from
// the request beyond the path.

// PortalCases returns the cases visible to the authenticated client.
func PortalCases(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		cases, err := store.API().PortalCases(c.Request.Context())
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, cases)
	}
}

// PortalCaseUpdates returns the progress notes of one of the client's
// cases.
func PortalCaseUpdates(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		updates, err := store.API().PortalCaseUpdates(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, updates)
	}
}

// PortalInvoices returns the client's invoices.
func PortalInvoices(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		invoices, err := store.API().PortalInvoices(c.Request.Context())
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, invoices)
	}
}
