package services

import (
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T, db *gorm.DB) (OrderService, *notify.Hub) {
	hub := notify.NewHub()
	return NewOrderService(db, NewPricingService(db), hub), hub
}

func uintPtr(v uint) *uint { return &v }

func TestCreateOrderMixedLines(t *testing.T) {
	db := setupTestDB(t)
	base, sauce, cheese, veggie, _ := seedKitchen(t, db)
	orders, _ := newOrderService(t, db)

	margherita := models.Pizza{Name: "Margherita", Description: "Classic delight pizza", BasePrice: 299, Category: models.CategoryVegetarian, IsAvailable: true}
	require.NoError(t, db.Create(&margherita).Error)

	order, err := orders.CreateOrder(7, CreateOrderInput{
		Items: []OrderLineInput{
			{PizzaID: uintPtr(margherita.ID), Price: 299, Quantity: 2},
			{
				CustomPizza: &PriceSelection{
					BaseID:    base.ID,
					SauceID:   sauce.ID,
					CheeseID:  cheese.ID,
					VeggieIDs: []uint{veggie.ID},
					Size:      "large",
				},
				Quantity: 1,
			},
		},
		DeliveryAddress: models.DeliveryAddress{Street: "1 Main St", City: "Pune"},
	})
	require.NoError(t, err)

	// 299*2 + 133.90 = 731.90
	assert.Equal(t, 731.90, order.TotalAmount)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.StatusPending, order.OrderStatus)
	assert.Equal(t, uint(7), order.UserID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Margherita", order.Items[0].PizzaName)
	assert.Equal(t, 598.0, order.Items[0].Price)
	require.True(t, order.Items[1].IsCustom())
	assert.Equal(t, 133.90, order.Items[1].Price)
	assert.Equal(t, "Thin Crust", order.Items[1].CustomPizza.Data().Base.Name)
}

func TestCreateOrderNumberFormat(t *testing.T) {
	db := setupTestDB(t)
	seedKitchen(t, db)
	orders, _ := newOrderService(t, db)

	pizza := models.Pizza{Name: "Pepperoni", Description: "Pepperoni classic pie", BasePrice: 349, Category: models.CategoryNonVegetarian, IsAvailable: true}
	require.NoError(t, db.Create(&pizza).Error)

	order, err := orders.CreateOrder(1, CreateOrderInput{
		Items: []OrderLineInput{{PizzaID: uintPtr(pizza.ID), Price: 349, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^PZ\d{13,}\d{3}$`), order.OrderNumber)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := setupTestDB(t)
	orders, _ := newOrderService(t, db)

	_, err := orders.CreateOrder(1, CreateOrderInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderInvalidCustomIngredient(t *testing.T) {
	db := setupTestDB(t)
	_, sauce, cheese, _, _ := seedKitchen(t, db)
	orders, _ := newOrderService(t, db)

	_, err := orders.CreateOrder(1, CreateOrderInput{
		Items: []OrderLineInput{{
			CustomPizza: &PriceSelection{BaseID: 9999, SauceID: sauce.ID, CheeseID: cheese.ID},
			Quantity:    1,
		}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetOrderOwnership(t *testing.T) {
	db := setupTestDB(t)
	seedKitchen(t, db)
	orders, _ := newOrderService(t, db)

	order := seedOrder(t, db, 7, models.StatusPending)

	_, err := orders.GetOrderForUser(order.ID, 7, "user")
	assert.NoError(t, err)

	_, err = orders.GetOrderForUser(order.ID, 8, "user")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = orders.GetOrderForUser(order.ID, 8, "admin")
	assert.NoError(t, err)

	_, err = orders.GetOrderForUser(9999, 7, "user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdvanceStatusFollowsFixedSequence(t *testing.T) {
	db := setupTestDB(t)
	orders, hub := newOrderService(t, db)

	order := seedOrder(t, db, 7, models.StatusPending)

	events, cancel := hub.Subscribe(notify.UserRoom(7))
	defer cancel()

	expected := []string{
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for _, want := range expected {
		updated, err := orders.SetStatus(order.ID, "")
		require.NoError(t, err)
		assert.Equal(t, want, updated.OrderStatus)

		ev := <-events
		assert.Equal(t, notify.EventOrderStatusUpdate, ev.Name)
	}

	// delivered is terminal
	_, err := orders.SetStatus(order.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	var final models.Order
	require.NoError(t, db.First(&final, order.ID).Error)
	require.NotNil(t, final.ActualDeliveryTime)
	assert.WithinDuration(t, time.Now(), *final.ActualDeliveryTime, 5*time.Second)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	db := setupTestDB(t)
	orders, _ := newOrderService(t, db)

	order := seedOrder(t, db, 7, models.StatusPending)

	_, err := orders.SetStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCancelOrderRules(t *testing.T) {
	db := setupTestDB(t)
	orders, hub := newOrderService(t, db)

	events, cancel := hub.Subscribe(notify.AdminRoom)
	defer cancel()

	// Owner can cancel a non-terminal order
	order := seedOrder(t, db, 7, models.StatusPreparing)
	cancelled, err := orders.CancelOrder(order.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.OrderStatus)

	ev := <-events
	assert.Equal(t, notify.EventOrderCancelled, ev.Name)

	// Cancelling again fails
	_, err = orders.CancelOrder(order.ID, 7)
	assert.ErrorIs(t, err, ErrCannotCancel)

	// Delivered orders cannot be cancelled
	delivered := seedOrder(t, db, 7, models.StatusDelivered)
	_, err = orders.CancelOrder(delivered.ID, 7)
	assert.ErrorIs(t, err, ErrCannotCancel)

	// Only the owner may cancel
	other := seedOrder(t, db, 7, models.StatusPending)
	_, err = orders.CancelOrder(other.ID, 8)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderStats(t *testing.T) {
	db := setupTestDB(t)
	orders, _ := newOrderService(t, db)

	paid := seedOrder(t, db, 1, models.StatusDelivered)
	require.NoError(t, db.Model(paid).Updates(map[string]interface{}{"payment_status": models.PaymentPaid, "total_amount": 500.0}).Error)
	seedOrder(t, db, 2, models.StatusPending)

	stats, err := orders.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(1), stats.DeliveredOrders)
	assert.Equal(t, 500.0, stats.TotalRevenue)
}

var orderSeq atomic.Uint64

// seedOrder persists a minimal order in the given status
func seedOrder(t *testing.T, db *gorm.DB, userID uint, status string) *models.Order {
	order := models.Order{
		UserID:        userID,
		OrderNumber:   fmt.Sprintf("PZTEST%06d", orderSeq.Add(1)),
		TotalAmount:   100,
		PaymentStatus: models.PaymentPending,
		OrderStatus:   status,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}
