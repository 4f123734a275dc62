package services

import (
	"testing"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func seedMenu(t *testing.T, db *gorm.DB) (models.Pizza, models.Pizza) {
	margherita := models.Pizza{
		Name:        "Margherita",
		Description: "Classic delight with 100% real mozzarella cheese",
		BasePrice:   299,
		Category:    models.CategoryVegetarian,
		Ingredients: datatypes.JSONSlice[string]{"Mozzarella", "Tomato Sauce", "Basil"},
		IsAvailable: true,
	}
	require.NoError(t, db.Create(&margherita).Error)

	seasonal := models.Pizza{
		Name:        "Pumpkin Special",
		Description: "Autumn seasonal pie, currently off the menu",
		BasePrice:   379,
		Category:    models.CategoryVegetarian,
		IsAvailable: false,
	}
	require.NoError(t, db.Create(&seasonal).Error)
	return margherita, seasonal
}

func TestGetAvailablePizzasHidesUnavailable(t *testing.T) {
	db := setupTestDB(t)
	seedMenu(t, db)
	svc := NewPizzaService(db)

	available, err := svc.GetAvailablePizzas()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Margherita", available[0].Name)

	all, err := svc.GetAllPizzas()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreatePizzaValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPizzaService(db)

	cases := []struct {
		name  string
		pizza models.Pizza
	}{
		{"short name", models.Pizza{Name: "A", Description: "long enough description", BasePrice: 100, Category: models.CategoryVegetarian}},
		{"short description", models.Pizza{Name: "Hawaiian", Description: "too short", BasePrice: 100, Category: models.CategoryVegetarian}},
		{"negative price", models.Pizza{Name: "Hawaiian", Description: "pineapple and ham classic", BasePrice: -1, Category: models.CategoryNonVegetarian}},
		{"bad category", models.Pizza{Name: "Hawaiian", Description: "pineapple and ham classic", BasePrice: 100, Category: "tropical"}},
	}
	for _, tc := range cases {
		_, err := svc.CreatePizza(tc.pizza)
		assert.ErrorIs(t, err, ErrValidation, tc.name)
	}

	created, err := svc.CreatePizza(models.Pizza{
		Name:        "Hawaiian",
		Description: "pineapple and ham classic",
		BasePrice:   100,
		Category:    models.CategoryNonVegetarian,
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestUpdatePizza(t *testing.T) {
	db := setupTestDB(t)
	margherita, _ := seedMenu(t, db)
	svc := NewPizzaService(db)

	updated, err := svc.UpdatePizza(margherita.ID, PizzaUpdate{BasePrice: floatPtr(319)})
	require.NoError(t, err)
	assert.Equal(t, 319.0, updated.BasePrice)
	assert.Equal(t, "Margherita", updated.Name)

	_, err = svc.UpdatePizza(margherita.ID, PizzaUpdate{Category: strPtr("tropical")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdatePizza(9999, PizzaUpdate{BasePrice: floatPtr(1)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePizzaWritesZeroValues(t *testing.T) {
	db := setupTestDB(t)
	margherita, _ := seedMenu(t, db)
	svc := NewPizzaService(db)

	// Taking a pizza off the menu and zeroing its price must not be
	// dropped as unset fields
	updated, err := svc.UpdatePizza(margherita.ID, PizzaUpdate{
		BasePrice:   floatPtr(0),
		IsAvailable: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.BasePrice)
	assert.False(t, updated.IsAvailable)

	var stored models.Pizza
	require.NoError(t, db.First(&stored, margherita.ID).Error)
	assert.Equal(t, 0.0, stored.BasePrice)
	assert.False(t, stored.IsAvailable)
	assert.Equal(t, "Margherita", stored.Name)
}

func TestDeletePizza(t *testing.T) {
	db := setupTestDB(t)
	margherita, _ := seedMenu(t, db)
	svc := NewPizzaService(db)

	require.NoError(t, svc.DeletePizza(margherita.ID))

	_, err := svc.GetPizzaByID(margherita.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeletePizza(margherita.ID), ErrNotFound)
}
