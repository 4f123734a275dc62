package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment statuses
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Order statuses, in forward order of the fulfillment pipeline
const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusOutForDelivery = "out-for-delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// statusSuccessor maps each non-terminal status to the next one in the
// fixed fulfillment sequence. delivered and cancelled are terminal and
// have no entry. cancelled is a side branch, not part of the chain.
var statusSuccessor = map[string]string{
	StatusPending:        StatusConfirmed,
	StatusConfirmed:      StatusPreparing,
	StatusPreparing:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// NextStatus returns the successor of the given order status. The second
// return value is false for terminal or unknown statuses.
func NextStatus(status string) (string, bool) {
	next, ok := statusSuccessor[status]
	return next, ok
}

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether s admits no further transitions
func TerminalStatus(s string) bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IngredientRef is a snapshot of one inventory item taken at order time.
// The name and unit price are copied so later catalog edits cannot change
// what the customer ordered.
type IngredientRef struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// CustomPizzaSelection is a user-composed pizza embedded inside an order
// line. It is never persisted standalone.
type CustomPizzaSelection struct {
	Base    IngredientRef   `json:"base"`
	Sauce   IngredientRef   `json:"sauce"`
	Cheese  IngredientRef   `json:"cheese"`
	Veggies []IngredientRef `json:"veggies,omitempty"`
	Meat    []IngredientRef `json:"meat,omitempty"`
	Size    string          `json:"size"`
}

// OrderItem is one line of an order: either a catalog pizza reference or
// an embedded custom pizza selection. Price is the resolved line total,
// fixed at order-creation time and never recomputed.
type OrderItem struct {
	ID          uint                                      `gorm:"primaryKey" json:"id"`
	OrderID     uint                                      `gorm:"index" json:"orderId"`
	PizzaID     *uint                                     `json:"pizzaId,omitempty"`
	PizzaName   string                                    `json:"pizzaName,omitempty"`
	CustomPizza *datatypes.JSONType[CustomPizzaSelection] `json:"customPizza,omitempty"`
	Quantity    int                                       `gorm:"not null" json:"quantity"`
	Price       float64                                   `gorm:"not null" json:"price"`
}

// IsCustom reports whether the line holds a custom pizza selection
func (i *OrderItem) IsCustom() bool {
	return i.CustomPizza != nil
}

// DeliveryAddress is embedded into the order record
type DeliveryAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

// Order is a persisted cart snapshot with payment and fulfillment state
type Order struct {
	ID                    uint            `gorm:"primaryKey" json:"id"`
	UserID                uint            `gorm:"index;not null" json:"userId"`
	OrderNumber           string          `gorm:"uniqueIndex;not null" json:"orderNumber"`
	Items                 []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount           float64         `gorm:"not null" json:"totalAmount"`
	DeliveryAddress       DeliveryAddress `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryAddress"`
	PaymentMethod         string          `gorm:"default:'razorpay'" json:"paymentMethod"`
	PaymentStatus         string          `gorm:"default:'pending'" json:"paymentStatus"`
	OrderStatus           string          `gorm:"index;default:'pending'" json:"orderStatus"`
	RazorpayOrderID       string          `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID     string          `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature     string          `json:"-"`
	EstimatedDeliveryTime *time.Time      `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time      `json:"actualDeliveryTime,omitempty"`
	CreatedAt             time.Time       `json:"createdAt"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}
