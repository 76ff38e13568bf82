package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/journal"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/middleware"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/services"
)

// ClientController lets staff inspect registered clients and manage the
// OAuth2 clients used by back-office tools
type ClientController struct {
	shop          *pizzeria.Pizzeria
	journal       journal.OrderJournal
	clientService services.StaffClientService
}

func NewClientController(shop *pizzeria.Pizzeria, orderJournal journal.OrderJournal, clientService services.StaffClientService) *ClientController {
	return &ClientController{shop: shop, journal: orderJournal, clientService: clientService}
}

type createToolRequest struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain"`
	Scopes string `json:"scopes"`
}

// ListAccounts godoc
// @Summary Registered clients
// @Tags clients
// @Produce json
// @Success 200 {array} models.ClientAccount
// @Security BearerAuth
// @Router /api/v1/staff/clients [get]
func (cc *ClientController) ListAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, cc.shop.Clients())
}

// ClientHistory godoc
// @Summary Order events of one client
// @Tags clients
// @Produce json
// @Param email path string true "Client email"
// @Success 200 {array} models.OrderEvent
// @Security BearerAuth
// @Router /api/v1/staff/clients/{email}/history [get]
func (cc *ClientController) ClientHistory(c *gin.Context) {
	events, err := cc.journal.ClientHistory(c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// CreateTool godoc
// @Summary Create a staff OAuth2 client
// @Description Create a client for back-office tools. The secret is returned only once.
// @Tags staff-tools
// @Accept json
// @Produce json
// @Param client body createToolRequest true "Client details"
// @Success 201 {object} map[string]interface{} "Client created with client_id and client_secret"
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/tools [post]
func (cc *ClientController) CreateTool(c *gin.Context) {
	var req createToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	client, secret, err := cc.clientService.CreateClient(req.Name, req.Domain, req.Scopes)
	if err != nil {
		log.WithError(err).Error("Failed to create staff client")
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "client_creation_failed"))
		return
	}

	log.WithField("created_by", middleware.UserID(c)).WithField("client_id", client.ID).Info("Staff client created")
	c.JSON(http.StatusCreated, gin.H{
		"client_id":     client.ID,
		"client_secret": secret, // Return plain secret only once
		"name":          client.Name,
		"scopes":        client.Scopes,
	})
}

// ListTools godoc
// @Summary List staff OAuth2 clients
// @Tags staff-tools
// @Produce json
// @Success 200 {array} models.StaffClient
// @Security BearerAuth
// @Router /api/v1/staff/tools [get]
func (cc *ClientController) ListTools(c *gin.Context) {
	clients, err := cc.clientService.ListClients()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "failed_to_retrieve_clients"))
		return
	}
	c.JSON(http.StatusOK, clients)
}

// DeleteTool godoc
// @Summary Delete a staff OAuth2 client
// @Description A tool cannot delete the client it is authenticated with
// @Tags staff-tools
// @Param id path string true "Client ID"
// @Success 204 "Client deleted successfully"
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/tools/{id} [delete]
func (cc *ClientController) DeleteTool(c *gin.Context) {
	clientID := c.Param("id")
	if clientID == middleware.UserID(c) {
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "cannot delete the calling client"))
		return
	}

	if err := cc.clientService.DeleteClient(clientID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "client_not_found"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "client_deletion_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}
