package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/gateway"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testGatewaySecret = "test_gateway_secret"

// fakeGateway implements gateway.Client without network calls. Signature
// verification uses the same HMAC scheme as the real gateway.
type fakeGateway struct {
	createdOrders int
	failCreate    bool
}

func (f *fakeGateway) CreateOrder(ctx context.Context, amount float64, currency, receipt string, notes map[string]string) (*gateway.RemoteOrder, error) {
	if f.failCreate {
		return nil, context.DeadlineExceeded
	}
	f.createdOrders++
	return &gateway.RemoteOrder{
		ID:       "order_fake123",
		Amount:   int64(amount * 100),
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) VerifySignature(remoteOrderID, paymentID, signature string) bool {
	return signFor(remoteOrderID, paymentID) == signature
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

func signFor(remoteOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testGatewaySecret))
	mac.Write([]byte(remoteOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newPaymentFixture(t *testing.T, db *gorm.DB) (PaymentService, *fakeGateway, *notify.Hub) {
	hub := notify.NewHub()
	pricing := NewPricingService(db)
	inventory := NewInventoryService(db)
	orders := NewOrderService(db, pricing, hub)
	gw := &fakeGateway{}
	return NewPaymentService(db, gw, orders, inventory, hub), gw, hub
}

func createPaidableOrder(t *testing.T, db *gorm.DB, payments PaymentService, qty int) *PaymentOrderResponse {
	var base, sauce, cheese, veggie models.InventoryItem
	require.NoError(t, db.Where("item_type = ?", models.ItemTypeBase).First(&base).Error)
	require.NoError(t, db.Where("item_type = ?", models.ItemTypeSauce).First(&sauce).Error)
	require.NoError(t, db.Where("item_type = ?", models.ItemTypeCheese).First(&cheese).Error)
	require.NoError(t, db.Where("item_type = ?", models.ItemTypeVeggie).First(&veggie).Error)

	resp, err := payments.CreatePaymentOrder(context.Background(), 7, CreateOrderInput{
		Items: []OrderLineInput{{
			CustomPizza: &PriceSelection{
				BaseID:    base.ID,
				SauceID:   sauce.ID,
				CheeseID:  cheese.ID,
				VeggieIDs: []uint{veggie.ID},
				Size:      "large",
			},
			Quantity: qty,
		}},
	})
	require.NoError(t, err)
	return resp
}

func TestCreatePaymentOrder(t *testing.T) {
	db := setupTestDB(t)
	seedKitchen(t, db)
	payments, gw, _ := newPaymentFixture(t, db)

	resp := createPaidableOrder(t, db, payments, 1)

	assert.Equal(t, "order_fake123", resp.RazorpayOrderID)
	assert.Equal(t, 133.90, resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "rzp_test_key", resp.Key)
	assert.Equal(t, 1, gw.createdOrders)

	// The remote id is persisted onto the order
	var order models.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	assert.Equal(t, "order_fake123", order.RazorpayOrderID)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
}

func TestCreatePaymentOrderGatewayFailure(t *testing.T) {
	db := setupTestDB(t)
	base, sauce, cheese, _, _ := seedKitchen(t, db)
	payments, gw, _ := newPaymentFixture(t, db)
	gw.failCreate = true

	_, err := payments.CreatePaymentOrder(context.Background(), 7, CreateOrderInput{
		Items: []OrderLineInput{{
			CustomPizza: &PriceSelection{BaseID: base.ID, SauceID: sauce.ID, CheeseID: cheese.ID},
			Quantity:    1,
		}},
	})
	assert.Error(t, err)
}

func TestVerifyPaymentSuccess(t *testing.T) {
	db := setupTestDB(t)
	base, sauce, cheese, veggie, _ := seedKitchen(t, db)
	payments, _, hub := newPaymentFixture(t, db)

	events, cancel := hub.Subscribe(notify.AdminRoom)
	defer cancel()

	resp := createPaidableOrder(t, db, payments, 2)

	order, err := payments.VerifyPayment(context.Background(), VerifyPaymentInput{
		OrderID:   resp.OrderID,
		PaymentID: "pay_abc",
		Signature: signFor(resp.RazorpayOrderID, "pay_abc"),
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, models.StatusConfirmed, order.OrderStatus)
	assert.Equal(t, "pay_abc", order.RazorpayPaymentID)
	require.NotNil(t, order.EstimatedDeliveryTime)
	assert.WithinDuration(t, time.Now().Add(45*time.Minute), *order.EstimatedDeliveryTime, 5*time.Second)

	// Every referenced ingredient is decremented by the line quantity
	for _, ref := range []struct {
		item  models.InventoryItem
		start int
	}{
		{base, 100}, {sauce, 200}, {cheese, 150}, {veggie, 50},
	} {
		var item models.InventoryItem
		require.NoError(t, db.First(&item, ref.item.ID).Error)
		assert.Equal(t, ref.start-2, item.StockQuantity, ref.item.Name)
	}

	// Meat was not part of the selection and is untouched
	var meat models.InventoryItem
	require.NoError(t, db.Where("item_type = ?", models.ItemTypeMeat).First(&meat).Error)
	assert.Equal(t, 40, meat.StockQuantity)

	// Fulfillment staff are notified of the new order
	ev := <-events
	assert.Equal(t, notify.EventNewOrder, ev.Name)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	db := setupTestDB(t)
	base, sauce, cheese, veggie, _ := seedKitchen(t, db)
	payments, _, _ := newPaymentFixture(t, db)

	resp := createPaidableOrder(t, db, payments, 1)

	_, err := payments.VerifyPayment(context.Background(), VerifyPaymentInput{
		OrderID:   resp.OrderID,
		PaymentID: "pay_abc",
		Signature: "forged-signature",
	})
	assert.ErrorIs(t, err, ErrPaymentVerification)

	// The order is left unpaid and no inventory changed
	var order models.Order
	require.NoError(t, db.First(&order, resp.OrderID).Error)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.StatusPending, order.OrderStatus)
	assert.Empty(t, order.RazorpayPaymentID)

	for _, item := range []models.InventoryItem{base, sauce, cheese, veggie} {
		var current models.InventoryItem
		require.NoError(t, db.First(&current, item.ID).Error)
		assert.Equal(t, item.StockQuantity, current.StockQuantity, item.Name)
	}
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	db := setupTestDB(t)
	seedKitchen(t, db)
	payments, _, _ := newPaymentFixture(t, db)

	_, err := payments.VerifyPayment(context.Background(), VerifyPaymentInput{
		OrderID:   9999,
		PaymentID: "pay_abc",
		Signature: "whatever",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
