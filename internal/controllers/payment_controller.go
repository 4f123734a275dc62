package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PaymentController handles checkout submission and payment verification
type PaymentController interface {
	CreateOrder(ctx *gin.Context)
	VerifyPayment(ctx *gin.Context)
}

type paymentController struct {
	payments services.PaymentService
}

// NewPaymentController creates a new instance of PaymentController
func NewPaymentController(payments services.PaymentService) PaymentController {
	return &paymentController{payments: payments}
}

// CreateOrder godoc
// @Summary Submit the cart and create a payment intent
// @Description Persists the order in pending state and registers a matching
// @Description payment order with the gateway. No inventory is touched yet.
// @Tags payment
// @Accept json
// @Produce json
// @Param body body services.CreateOrderInput true "Cart items and delivery address"
// @Success 200 {object} services.PaymentOrderResponse
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /payment/create-order [post]
func (c *paymentController) CreateOrder(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	var input services.CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, err := c.payments.CreatePaymentOrder(ctx.Request.Context(), userID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// VerifyPayment godoc
// @Summary Verify a client-reported payment confirmation
// @Description Checks the gateway signature. On match the order is marked
// @Description paid and confirmed, ingredient stock is decremented and the
// @Description admin room is notified. On mismatch nothing changes.
// @Tags payment
// @Accept json
// @Produce json
// @Param body body services.VerifyPaymentInput true "Order id, payment id and signature"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /payment/verify-payment [post]
func (c *paymentController) VerifyPayment(ctx *gin.Context) {
	var input services.VerifyPaymentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := c.payments.VerifyPayment(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Payment verified successfully", "order": order})
}
