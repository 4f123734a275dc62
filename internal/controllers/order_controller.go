package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
	"github.com/gin-gonic/gin"
)

// OrderController handles order lookups and the status lifecycle
type OrderController interface {
	GetMyOrders(ctx *gin.Context)
	GetOrder(ctx *gin.Context)
	ListOrders(ctx *gin.Context)
	UpdateStatus(ctx *gin.Context)
	CancelOrder(ctx *gin.Context)
	Stats(ctx *gin.Context)
}

type orderController struct {
	orders services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(orders services.OrderService) OrderController {
	return &orderController{orders: orders}
}

// GetMyOrders godoc
// @Summary List the caller's orders, newest first
// @Tags orders
// @Produce json
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /orders/my-orders [get]
func (c *orderController) GetMyOrders(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}
	orders, err := c.orders.ListUserOrders(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get an order by ID (owner or admin)
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /orders/{id} [get]
func (c *orderController) GetOrder(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	userID, role, ok := currentUser(ctx)
	if !ok {
		return
	}
	order, err := c.orders.GetOrderForUser(id, userID, role)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// ListOrders godoc
// @Summary Paginated order listing with optional status filter (admin)
// @Tags orders
// @Produce json
// @Param status query string false "Filter by order status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} services.OrderPage
// @Security BearerAuth
// @Router /orders [get]
func (c *orderController) ListOrders(ctx *gin.Context) {
	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", 10)

	result, err := c.orders.ListOrders(ctx.Query("status"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

type updateStatusRequest struct {
	// Empty orderStatus advances the order to the successor of its
	// current status in the fixed fulfillment sequence.
	OrderStatus string `json:"orderStatus"`
}

// UpdateStatus godoc
// @Summary Write or advance an order's status (admin)
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param body body updateStatusRequest true "Target status, or empty to advance"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /orders/{id}/status [patch]
func (c *orderController) UpdateStatus(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := c.orders.SetStatus(id, req.OrderStatus)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
}

// CancelOrder godoc
// @Summary Cancel an order owned by the caller
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Security BearerAuth
// @Router /orders/{id}/cancel [patch]
func (c *orderController) CancelOrder(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	if _, err := c.orders.CancelOrder(id, userID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully"})
}

// Stats returns aggregate order counts and revenue (admin)
func (c *orderController) Stats(ctx *gin.Context) {
	stats, err := c.orders.Stats()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
