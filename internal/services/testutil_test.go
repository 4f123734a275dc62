package services

import (
	"testing"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func strPtr(s string) *string     { return &s }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.Pizza{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)

	return db
}

func createItem(t *testing.T, db *gorm.DB, name, itemType string, price float64, stock int) models.InventoryItem {
	item := models.InventoryItem{
		Name:              name,
		ItemType:          itemType,
		Price:             price,
		StockQuantity:     stock,
		ThresholdQuantity: 5,
		Unit:              "kg",
		Category:          models.CategoryVegetarian,
		IsAvailable:       true,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// seedKitchen creates the standard ingredient set used across tests:
// Thin Crust (50), Tomato Sauce (15), Mozzarella (30), Bell Peppers (8),
// Pepperoni (25)
func seedKitchen(t *testing.T, db *gorm.DB) (base, sauce, cheese, veggie, meat models.InventoryItem) {
	base = createItem(t, db, "Thin Crust", models.ItemTypeBase, 50, 100)
	sauce = createItem(t, db, "Tomato Sauce", models.ItemTypeSauce, 15, 200)
	cheese = createItem(t, db, "Mozzarella", models.ItemTypeCheese, 30, 150)
	veggie = createItem(t, db, "Bell Peppers", models.ItemTypeVeggie, 8, 50)
	meat = createItem(t, db, "Pepperoni", models.ItemTypeMeat, 25, 40)
	return
}
