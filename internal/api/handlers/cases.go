package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
	"lexportal/internal/apiclient"
)

// ListCases returns the workspace's cases, optionally filtered by status.
func ListCases(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		cases, err := store.API().ListCases(c.Request.Context(), c.Query("status"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, cases)
	}
}

// GetCase returns a single case.
func GetCase(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		kase, err := store.API().GetCase(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, kase)
	}
}

// CreateCase opens a new case for a client.
func CreateCase(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		kase, err := store.API().CreateCase(c.Request.Context(), apiclient.CaseInput{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			ClientID:    req.ClientID,
		})
		if err != nil {
			respondBackendError(c, err)
			return
		}

		createAuditLog(services, "case_created", "", store.ID(), "Case created: "+req.Title, getClientIP(c))
		respondCreated(c, kase)
	}
}

// UpdateCase updates a case.
func UpdateCase(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		kase, err := store.API().UpdateCase(c.Request.Context(), c.Param("id"), apiclient.CaseInput{
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			ClientID:    req.ClientID,
		})
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, kase)
	}
}

// DeleteCase removes a case.
func DeleteCase(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		if err := store.API().DeleteCase(c.Request.Context(), c.Param("id")); err != nil {
			respondBackendError(c, err)
			return
		}

		createAuditLog(services, "case_deleted", "", store.ID(), "Case deleted: "+c.Param("id"), getClientIP(c))
		respondOK(c, nil)
	}
}

// ListCaseUpdates returns the progress notes of a case.
func ListCaseUpdates(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		updates, err := store.API().ListCaseUpdates(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, updates)
	}
}

// AddCaseUpdate appends a progress note to a case.
func AddCaseUpdate(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CaseUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		update, err := store.API().AddCaseUpdate(c.Request.Context(), c.Param("id"), req.Note)
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondCreated(c, update)
	}
}
