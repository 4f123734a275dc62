package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/notify"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderLineInput is one submitted cart line: either a catalog pizza
// reference with its unit price, or a custom pizza selection
type OrderLineInput struct {
	PizzaID     *uint           `json:"pizza,omitempty"`
	Price       float64         `json:"price,omitempty"`
	Quantity    int             `json:"quantity" binding:"required,min=1"`
	CustomPizza *PriceSelection `json:"customPizza,omitempty"`
}

// CreateOrderInput is the checkout submission payload
type CreateOrderInput struct {
	Items           []OrderLineInput       `json:"items" binding:"required"`
	DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
}

// OrderPage is a paginated admin listing of orders
type OrderPage struct {
	Orders      []models.Order `json:"orders"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Total       int64          `json:"total"`
}

// OrderStats aggregates order counts and paid revenue
type OrderStats struct {
	TotalOrders          int64   `json:"totalOrders"`
	PendingOrders        int64   `json:"pendingOrders"`
	PreparingOrders      int64   `json:"preparingOrders"`
	OutForDeliveryOrders int64   `json:"outForDeliveryOrders"`
	DeliveredOrders      int64   `json:"deliveredOrders"`
	TotalRevenue         float64 `json:"totalRevenue"`
}

// OrderService manages order creation, lookup and the status lifecycle
type OrderService interface {
	// CreateOrder resolves line prices, sums the total, assigns an order
	// number and persists the order in pending/unpaid state. No inventory
	// is touched at creation time.
	CreateOrder(userID uint, in CreateOrderInput) (*models.Order, error)
	// GetOrder retrieves an order with its lines
	GetOrder(id uint) (*models.Order, error)
	// GetOrderForUser retrieves an order, enforcing that the caller is the
	// owner or an admin
	GetOrderForUser(id, userID uint, role string) (*models.Order, error)
	// ListUserOrders returns the user's orders, newest first
	ListUserOrders(userID uint) ([]models.Order, error)
	// ListOrders returns a paginated admin listing, optionally filtered by status
	ListOrders(status string, page, limit int) (OrderPage, error)
	// SetStatus writes an explicit order status (admin). An empty status
	// advances to the fixed successor of the current one.
	SetStatus(id uint, status string) (*models.Order, error)
	// CancelOrder cancels an order on behalf of its owner. Delivered and
	// cancelled orders cannot be cancelled.
	CancelOrder(id, userID uint) (*models.Order, error)
	// Stats aggregates order counts and revenue for the admin overview
	Stats() (OrderStats, error)
}

type orderService struct {
	db      *gorm.DB
	pricing PricingService
	hub     *notify.Hub
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB, pricing PricingService, hub *notify.Hub) OrderService {
	return &orderService{db: db, pricing: pricing, hub: hub}
}

func (s *orderService) CreateOrder(userID uint, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: no items in cart", ErrValidation)
	}

	order := models.Order{
		UserID:          userID,
		OrderNumber:     generateOrderNumber(),
		DeliveryAddress: in.DeliveryAddress,
		PaymentMethod:   "razorpay",
		PaymentStatus:   models.PaymentPending,
		OrderStatus:     models.StatusPending,
	}

	var total float64
	for _, line := range in.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}

		if line.CustomPizza != nil {
			snapshot, unitPrice, err := s.pricing.ResolveSelection(*line.CustomPizza)
			if err != nil {
				return nil, err
			}
			linePrice := roundToCents(unitPrice * float64(line.Quantity))
			payload := datatypes.NewJSONType(snapshot)
			order.Items = append(order.Items, models.OrderItem{
				CustomPizza: &payload,
				Quantity:    line.Quantity,
				Price:       linePrice,
			})
			total += linePrice
			continue
		}

		if line.PizzaID == nil {
			return nil, fmt.Errorf("%w: order line must reference a pizza or a custom pizza", ErrValidation)
		}
		linePrice := roundToCents(line.Price * float64(line.Quantity))
		item := models.OrderItem{
			PizzaID:  line.PizzaID,
			Quantity: line.Quantity,
			Price:    linePrice,
		}
		// Snapshot the menu name so the line survives later catalog edits
		var pizza models.Pizza
		if err := s.db.First(&pizza, *line.PizzaID).Error; err == nil {
			item.PizzaName = pizza.Name
		}
		order.Items = append(order.Items, item)
		total += linePrice
	}
	order.TotalAmount = roundToCents(total)

	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

func (s *orderService) GetOrderForUser(id, userID uint, role string) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && role != "admin" {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *orderService) ListUserOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) ListOrders(status string, page, limit int) (OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.Model(&models.Order{})
	if status != "" {
		if !models.ValidOrderStatus(status) {
			return OrderPage{}, fmt.Errorf("%w: invalid order status %q", ErrValidation, status)
		}
		query = query.Where("order_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return OrderPage{}, err
	}

	var orders []models.Order
	if err := query.Preload("Items").Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&orders).Error; err != nil {
		return OrderPage{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return OrderPage{Orders: orders, TotalPages: totalPages, CurrentPage: page, Total: total}, nil
}

func (s *orderService) SetStatus(id uint, status string) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if status == "" {
		next, ok := models.NextStatus(order.OrderStatus)
		if !ok {
			return nil, fmt.Errorf("%w: order in %q state has no further status", ErrValidation, order.OrderStatus)
		}
		status = next
	} else if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: invalid order status %q", ErrValidation, status)
	}

	order.OrderStatus = status
	if status == models.StatusDelivered {
		now := time.Now()
		order.ActualDeliveryTime = &now
	}

	if err := s.db.Save(order).Error; err != nil {
		return nil, err
	}

	s.hub.Publish(notify.UserRoom(order.UserID), notify.EventOrderStatusUpdate, map[string]interface{}{
		"orderId":   order.ID,
		"status":    order.OrderStatus,
		"updatedAt": order.UpdatedAt,
	})
	return order, nil
}

func (s *orderService) CancelOrder(id, userID uint) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if models.TerminalStatus(order.OrderStatus) {
		return nil, ErrCannotCancel
	}

	order.OrderStatus = models.StatusCancelled
	if err := s.db.Save(order).Error; err != nil {
		return nil, err
	}

	s.hub.Publish(notify.AdminRoom, notify.EventOrderCancelled, order)
	return order, nil
}

func (s *orderService) Stats() (OrderStats, error) {
	var stats OrderStats

	counts := []struct {
		status string
		dest   *int64
	}{
		{"", &stats.TotalOrders},
		{models.StatusPending, &stats.PendingOrders},
		{models.StatusPreparing, &stats.PreparingOrders},
		{models.StatusOutForDelivery, &stats.OutForDeliveryOrders},
		{models.StatusDelivered, &stats.DeliveredOrders},
	}
	for _, c := range counts {
		query := s.db.Model(&models.Order{})
		if c.status != "" {
			query = query.Where("order_status = ?", c.status)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return OrderStats{}, err
		}
	}

	err := s.db.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return OrderStats{}, err
	}
	return stats, nil
}

// generateOrderNumber builds a human-readable order number from the
// current timestamp plus a random suffix. Uniqueness is probabilistic;
// the unique index on order_number backstops collisions.
func generateOrderNumber() string {
	return fmt.Sprintf("PZ%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
