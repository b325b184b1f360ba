package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
	"lexportal/internal/apiclient"
)

// ListInvoices returns the workspace's invoices, optionally filtered by
// status.
func ListInvoices(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		invoices, err := store.API().ListInvoices(c.Request.Context(), c.Query("status"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, invoices)
	}
}

// GetInvoice returns a single invoice.
func GetInvoice(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		invoice, err := store.API().GetInvoice(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, invoice)
	}
}

// CreateInvoice issues an invoice to a client.
func CreateInvoice(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.InvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		invoice, err := store.API().CreateInvoice(c.Request.Context(), apiclient.InvoiceInput{
			ClientID: req.ClientID,
			CaseID:   req.CaseID,
			Amount:   req.Amount,
			DueDate:  req.DueDate,
		})
		if err != nil {
			respondBackendError(c, err)
			return
		}

		createAuditLog(services, "invoice_created", "", store.ID(), "Invoice created for client "+req.ClientID, getClientIP(c))
		respondCreated(c, invoice)
	}
}

// ListPayments returns payments, optionally scoped to one invoice via the
// invoice_id query parameter.
func ListPayments(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		payments, err := store.API().ListPayments(c.Request.Context(), c.Query("invoice_id"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, payments)
	}
}

// RecordPayment registers a payment against an invoice.
func RecordPayment(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		payment, err := store.API().RecordPayment(c.Request.Context(), apiclient.PaymentInput{
			InvoiceID: req.InvoiceID,
			Amount:    req.Amount,
			Method:    req.Method,
		})
		if err != nil {
			respondBackendError(c, err)
			return
		}

		createAuditLog(services, "payment_recorded", "", store.ID(), "Payment recorded on invoice "+req.InvoiceID, getClientIP(c))
		respondCreated(c, payment)
	}
}
