package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PizzaUpdate carries the fields of an admin menu edit. Pointer fields
// distinguish "not provided" from explicit zero values, so a pizza can
// be taken off the menu or repriced to zero.
type PizzaUpdate struct {
	Name        *string                                    `json:"name"`
	Description *string                                    `json:"description"`
	BasePrice   *float64                                   `json:"basePrice"`
	Category    *string                                    `json:"category"`
	Ingredients *datatypes.JSONSlice[string]               `json:"ingredients"`
	Nutrition   *datatypes.JSONType[models.NutritionFacts] `json:"nutrition"`
	IsAvailable *bool                                      `json:"isAvailable"`
}

// PizzaService provides methods to interact with the pizza menu
type PizzaService interface {
	// GetAvailablePizzas retrieves menu pizzas currently offered to customers
	GetAvailablePizzas() ([]models.Pizza, error)
	// GetAllPizzas retrieves every menu pizza, including unavailable ones
	GetAllPizzas() ([]models.Pizza, error)
	// GetPizzaByID retrieves a pizza by its ID
	GetPizzaByID(id uint) (models.Pizza, error)
	// CreatePizza creates a new menu pizza
	CreatePizza(pizza models.Pizza) (models.Pizza, error)
	// UpdatePizza applies the provided fields onto an existing pizza. Nil
	// fields are left unchanged; explicit zero and false values are written.
	UpdatePizza(id uint, in PizzaUpdate) (models.Pizza, error)
	// DeletePizza deletes a pizza from the menu by its ID
	DeletePizza(id uint) error
}

type pizzaService struct {
	db *gorm.DB
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB) PizzaService {
	return &pizzaService{db: db}
}

func (s *pizzaService) GetAvailablePizzas() ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.Where("is_available = ?", true).Order("created_at DESC").Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetAllPizzas() ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := s.db.Order("created_at DESC").Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizzaByID(id uint) (models.Pizza, error) {
	var pizza models.Pizza
	if err := s.db.First(&pizza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, fmt.Errorf("%w: pizza %d", ErrNotFound, id)
		}
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) CreatePizza(pizza models.Pizza) (models.Pizza, error) {
	if len(pizza.Name) < 2 {
		return models.Pizza{}, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	if len(pizza.Description) < 10 {
		return models.Pizza{}, fmt.Errorf("%w: description must be at least 10 characters", ErrValidation)
	}
	if pizza.BasePrice < 0 {
		return models.Pizza{}, fmt.Errorf("%w: base price must not be negative", ErrValidation)
	}
	if !models.ValidCategory(pizza.Category) {
		return models.Pizza{}, fmt.Errorf("%w: invalid category %q", ErrValidation, pizza.Category)
	}

	if err := s.db.Create(&pizza).Error; err != nil {
		return models.Pizza{}, err
	}
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(id uint, in PizzaUpdate) (models.Pizza, error) {
	pizza, err := s.GetPizzaByID(id)
	if err != nil {
		return models.Pizza{}, err
	}

	// Map-based updates so zero and false values reach the database
	values := map[string]interface{}{}
	if in.Name != nil {
		if len(*in.Name) < 2 {
			return models.Pizza{}, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
		}
		values["name"] = *in.Name
	}
	if in.Description != nil {
		if len(*in.Description) < 10 {
			return models.Pizza{}, fmt.Errorf("%w: description must be at least 10 characters", ErrValidation)
		}
		values["description"] = *in.Description
	}
	if in.BasePrice != nil {
		if *in.BasePrice < 0 {
			return models.Pizza{}, fmt.Errorf("%w: base price must not be negative", ErrValidation)
		}
		values["base_price"] = *in.BasePrice
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return models.Pizza{}, fmt.Errorf("%w: invalid category %q", ErrValidation, *in.Category)
		}
		values["category"] = *in.Category
	}
	if in.Ingredients != nil {
		values["ingredients"] = *in.Ingredients
	}
	if in.Nutrition != nil {
		values["nutrition"] = *in.Nutrition
	}
	if in.IsAvailable != nil {
		values["is_available"] = *in.IsAvailable
	}

	if len(values) == 0 {
		return pizza, nil
	}
	if err := s.db.Model(&pizza).Updates(values).Error; err != nil {
		return models.Pizza{}, err
	}
	return s.GetPizzaByID(id)
}

func (s *pizzaService) DeletePizza(id uint) error {
	result := s.db.Delete(&models.Pizza{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: pizza %d", ErrNotFound, id)
	}
	return nil
}
