package services

import (
	"context"
	"strconv"
	"time"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/gateway"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/notify"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// PaymentOrderResponse carries everything the client needs to open the
// gateway's checkout UI
type PaymentOrderResponse struct {
	OrderID         uint    `json:"orderId"`
	RazorpayOrderID string  `json:"razorpayOrderId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Key             string  `json:"key"`
}

// VerifyPaymentInput is the client-reported payment confirmation
type VerifyPaymentInput struct {
	OrderID   uint   `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

// PaymentService drives the order/payment/inventory workflow: checkout
// submission creates the order plus a remote payment intent, and
// verification is the single transition that marks the order paid,
// decrements stock and notifies fulfillment staff.
type PaymentService interface {
	// CreatePaymentOrder persists a pending order and registers a matching
	// payment intent with the gateway
	CreatePaymentOrder(ctx context.Context, userID uint, in CreateOrderInput) (*PaymentOrderResponse, error)
	// VerifyPayment checks the gateway signature. On mismatch the order is
	// left unpaid and no inventory changes occur. On match the order is
	// marked paid/confirmed, stock is decremented and the admin room is
	// notified of the new order.
	VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*models.Order, error)
}

type paymentService struct {
	db        *gorm.DB
	gateway   gateway.Client
	orders    OrderService
	inventory InventoryService
	hub       *notify.Hub
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(db *gorm.DB, gw gateway.Client, orders OrderService, inventory InventoryService, hub *notify.Hub) PaymentService {
	return &paymentService{db: db, gateway: gw, orders: orders, inventory: inventory, hub: hub}
}

func (s *paymentService) CreatePaymentOrder(ctx context.Context, userID uint, in CreateOrderInput) (*PaymentOrderResponse, error) {
	order, err := s.orders.CreateOrder(userID, in)
	if err != nil {
		return nil, err
	}

	remote, err := s.gateway.CreateOrder(ctx, order.TotalAmount, "INR", order.OrderNumber, map[string]string{
		"orderId": strconv.FormatUint(uint64(order.ID), 10),
	})
	if err != nil {
		return nil, err
	}

	order.RazorpayOrderID = remote.ID
	if err := s.db.Save(order).Error; err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"order_id":        order.ID,
		"order_number":    order.OrderNumber,
		"remote_order_id": remote.ID,
		"amount":          order.TotalAmount,
	}).Info("Payment order created")

	return &PaymentOrderResponse{
		OrderID:         order.ID,
		RazorpayOrderID: remote.ID,
		Amount:          order.TotalAmount,
		Currency:        "INR",
		Key:             s.gateway.KeyID(),
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, in VerifyPaymentInput) (*models.Order, error) {
	order, err := s.orders.GetOrder(in.OrderID)
	if err != nil {
		return nil, err
	}

	if !s.gateway.VerifySignature(order.RazorpayOrderID, in.PaymentID, in.Signature) {
		log.WithFields(logrus.Fields{
			"order_id":     order.ID,
			"order_number": order.OrderNumber,
		}).Warn("Payment signature mismatch")
		return nil, ErrPaymentVerification
	}

	estimated := time.Now().Add(45 * time.Minute)
	order.PaymentStatus = models.PaymentPaid
	order.OrderStatus = models.StatusConfirmed
	order.RazorpayPaymentID = in.PaymentID
	order.RazorpaySignature = in.Signature
	order.EstimatedDeliveryTime = &estimated

	if err := s.db.Save(order).Error; err != nil {
		return nil, err
	}

	if err := s.inventory.DecrementForOrder(order); err != nil {
		// The order is already paid; a decrement failure is logged rather
		// than surfaced to the customer.
		log.WithFields(logrus.Fields{
			"order_id": order.ID,
			"error":    err.Error(),
		}).Error("Inventory decrement failed after payment")
	}

	s.hub.Publish(notify.AdminRoom, notify.EventNewOrder, order)

	log.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"payment_id":   in.PaymentID,
	}).Info("Payment verified, order confirmed")

	return order, nil
}
