package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/journal"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/middleware"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/pizzeria"
)

// OrderController serves both sides of the order ledger: clients building
// their baskets and staff processing validated orders
type OrderController struct {
	shop    *pizzeria.Pizzeria
	journal journal.OrderJournal
}

func NewOrderController(shop *pizzeria.Pizzeria, orderJournal journal.OrderJournal) *OrderController {
	return &OrderController{shop: shop, journal: orderJournal}
}

type addPizzaRequest struct {
	Pizza string `json:"pizza" binding:"required"`
	Count *int   `json:"count"`
}

// BeginOrder godoc
// @Summary Begin an order
// @Tags orders
// @Produce json
// @Success 201 {object} models.Order
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/orders [post]
func (oc *OrderController) BeginOrder(c *gin.Context) {
	order, err := oc.shop.BeginOrder(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// AddPizza godoc
// @Summary Add pizzas to an order
// @Description Count defaults to one when omitted and must be positive
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param item body addPizzaRequest true "Pizza and count"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/orders/{id}/pizzas [post]
func (oc *OrderController) AddPizza(c *gin.Context) {
	var req addPizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	count := 1
	if req.Count != nil {
		count = *req.Count
	}
	order, err := oc.shop.AddPizza(middleware.SessionID(c), c.Param("id"), req.Pizza, count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// RemovePizza godoc
// @Summary Remove one pizza from an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Param pizza path string true "Pizza name"
// @Success 200 {object} models.Order
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/orders/{id}/pizzas/{pizza} [delete]
func (oc *OrderController) RemovePizza(c *gin.Context) {
	order, err := oc.shop.RemovePizza(middleware.SessionID(c), c.Param("id"), c.Param("pizza"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// ValidateOrder godoc
// @Summary Validate an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/orders/{id}/validate [post]
func (oc *OrderController) ValidateOrder(c *gin.Context) {
	order, err := oc.shop.ValidateOrder(middleware.SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Only orders that were not validated can be cancelled
// @Tags orders
// @Param id path string true "Order ID"
// @Success 204
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/client/orders/{id} [delete]
func (oc *OrderController) CancelOrder(c *gin.Context) {
	if err := oc.shop.CancelOrder(middleware.SessionID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OrdersInProgress godoc
// @Summary Orders in progress
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /api/v1/client/orders/in-progress [get]
func (oc *OrderController) OrdersInProgress(c *gin.Context) {
	orders, err := oc.shop.OrdersInProgress(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// PastOrders godoc
// @Summary Validated and processed orders
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /api/v1/client/orders/past [get]
func (oc *OrderController) PastOrders(c *gin.Context) {
	orders, err := oc.shop.PastOrders(middleware.SessionID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ProcessedOrders godoc
// @Summary Processed orders
// @Tags staff-orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /api/v1/staff/orders/processed [get]
func (oc *OrderController) ProcessedOrders(c *gin.Context) {
	c.JSON(http.StatusOK, oc.shop.ProcessedOrders())
}

// ProcessedOrdersForClient godoc
// @Summary Processed orders of one client
// @Tags staff-orders
// @Produce json
// @Param email path string true "Client email"
// @Success 200 {array} models.Order
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/clients/{email}/orders [get]
func (oc *OrderController) ProcessedOrdersForClient(c *gin.Context) {
	orders, err := oc.shop.ProcessedOrdersForClient(c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// PeekPendingOrders godoc
// @Summary Validated orders awaiting processing
// @Description Does not change any order
// @Tags staff-orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /api/v1/staff/orders/pending [get]
func (oc *OrderController) PeekPendingOrders(c *gin.Context) {
	c.JSON(http.StatusOK, oc.shop.PeekPendingOrders())
}

// ClaimPendingOrders godoc
// @Summary Claim validated orders
// @Description Returns every validated order and marks it processed. A second call returns an empty list.
// @Tags staff-orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /api/v1/staff/orders/pending/claim [post]
func (oc *OrderController) ClaimPendingOrders(c *gin.Context) {
	c.JSON(http.StatusOK, oc.shop.ClaimPendingOrders())
}

// OrderBenefit godoc
// @Summary Benefit of one order
// @Tags statistics
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/orders/{id}/benefit [get]
func (oc *OrderController) OrderBenefit(c *gin.Context) {
	benefit, err := oc.shop.BenefitOfOrder(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": c.Param("id"), "benefit": benefit})
}

// OrderHistory godoc
// @Summary Lifecycle history of an order
// @Description Events recorded for the order, oldest first. Cancelled orders keep their history.
// @Tags staff-orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} models.OrderEvent
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/staff/orders/{id}/history [get]
func (oc *OrderController) OrderHistory(c *gin.Context) {
	events, err := oc.journal.History(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(events) == 0 {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "no history for order"))
		return
	}
	c.JSON(http.StatusOK, events)
}
