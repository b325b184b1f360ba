package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lexportal/internal/api/interfaces"
	"lexportal/internal/api/models"
	"lexportal/internal/apiclient"
)

// ListClients returns the workspace's clients, optionally filtered by a
// search term.
func ListClients(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		clients, err := store.API().ListClients(c.Request.Context(), c.Query("search"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, clients)
	}
}

// GetClient returns a single client record.
func GetClient(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		client, err := store.API().GetClient(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, client)
	}
}

// CreateClient adds a client record to the workspace.
func CreateClient(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		client, err := store.API().CreateClient(c.Request.Context(), apiclient.ClientInput{
			FullName: req.FullName,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		if err != nil {
			respondBackendError(c, err)
			return
		}

		createAuditLog(services, "client_created", "", store.ID(), "Client created: "+req.FullName, getClientIP(c))
		respondCreated(c, client)
	}
}

// UpdateClient updates a client record.
func UpdateClient(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondErrorCode(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request format: "+err.Error())
			return
		}

		store, ok := sessionStore(c)
		if !ok {
			return
		}

		client, err := store.API().UpdateClient(c.Request.Context(), c.Param("id"), apiclient.ClientInput{
			FullName: req.FullName,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		if err != nil {
			respondBackendError(c, err)
			return
		}

		respondOK(c, client)
	}
}

// DeleteClient removes a client record.
func DeleteClient(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		if err := store.API().DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
			respondBackendError(c, err)
			return
		}

		createAuditLog(services, "client_deleted", "", store.ID(), "Client deleted: "+c.Param("id"), getClientIP(c))
		respondOK(c, nil)
	}
}
