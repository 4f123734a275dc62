package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"gorm.io/gorm"
)

// Size multipliers applied to the summed ingredient price. An
// unrecognized size falls back to 1.0 rather than failing.
var sizeMultipliers = map[string]float64{
	"small":  0.8,
	"medium": 1.0,
	"large":  1.3,
}

// SizeMultiplier returns the price multiplier for a pizza size
func SizeMultiplier(size string) float64 {
	if m, ok := sizeMultipliers[size]; ok {
		return m
	}
	return 1.0
}

// PriceSelection is the client's custom pizza composition: required
// base/sauce/cheese references, optional veggie and meat references,
// and a size.
type PriceSelection struct {
	BaseID    uint   `json:"base" binding:"required"`
	SauceID   uint   `json:"sauce" binding:"required"`
	CheeseID  uint   `json:"cheese" binding:"required"`
	VeggieIDs []uint `json:"veggies"`
	MeatIDs   []uint `json:"meat"`
	Size      string `json:"size"`
}

// PriceBreakdown itemizes the computed price for display
type PriceBreakdown struct {
	Base           float64 `json:"base"`
	Sauce          float64 `json:"sauce"`
	Cheese         float64 `json:"cheese"`
	Veggies        float64 `json:"veggies"`
	Meat           float64 `json:"meat"`
	SizeMultiplier float64 `json:"sizeMultiplier"`
}

// PriceQuote is the result of a price calculation
type PriceQuote struct {
	TotalPrice float64        `json:"totalPrice"`
	Breakdown  PriceBreakdown `json:"breakdown"`
}

// PricingService computes custom pizza prices from current inventory
// prices. It is read-only: no stock is mutated or reserved, so a price
// quote is not locked in between calculation and order submission.
type PricingService interface {
	// CalculatePrice resolves the selection against inventory and returns
	// the total price with a component breakdown
	CalculatePrice(sel PriceSelection) (PriceQuote, error)
	// ResolveSelection resolves the selection to a priced snapshot of the
	// referenced ingredients, plus the unit price for one pizza
	ResolveSelection(sel PriceSelection) (models.CustomPizzaSelection, float64, error)
}

type pricingService struct {
	db *gorm.DB
}

// NewPricingService creates a new instance of PricingService
func NewPricingService(db *gorm.DB) PricingService {
	return &pricingService{db: db}
}

func (s *pricingService) CalculatePrice(sel PriceSelection) (PriceQuote, error) {
	snapshot, _, err := s.ResolveSelection(sel)
	if err != nil {
		return PriceQuote{}, err
	}

	multiplier := SizeMultiplier(sel.Size)

	var veggieTotal, meatTotal float64
	for _, v := range snapshot.Veggies {
		veggieTotal += v.Price
	}
	for _, m := range snapshot.Meat {
		meatTotal += m.Price
	}

	sum := snapshot.Base.Price + snapshot.Sauce.Price + snapshot.Cheese.Price + veggieTotal + meatTotal

	return PriceQuote{
		TotalPrice: roundToCents(sum * multiplier),
		Breakdown: PriceBreakdown{
			Base:           snapshot.Base.Price,
			Sauce:          snapshot.Sauce.Price,
			Cheese:         snapshot.Cheese.Price,
			Veggies:        veggieTotal,
			Meat:           meatTotal,
			SizeMultiplier: multiplier,
		},
	}, nil
}

func (s *pricingService) ResolveSelection(sel PriceSelection) (models.CustomPizzaSelection, float64, error) {
	base, err := s.requireItem(sel.BaseID, "base")
	if err != nil {
		return models.CustomPizzaSelection{}, 0, err
	}
	sauce, err := s.requireItem(sel.SauceID, "sauce")
	if err != nil {
		return models.CustomPizzaSelection{}, 0, err
	}
	cheese, err := s.requireItem(sel.CheeseID, "cheese")
	if err != nil {
		return models.CustomPizzaSelection{}, 0, err
	}

	snapshot := models.CustomPizzaSelection{
		Base:   ingredientRef(base),
		Sauce:  ingredientRef(sauce),
		Cheese: ingredientRef(cheese),
		Size:   sel.Size,
	}

	total := base.Price + sauce.Price + cheese.Price

	// Unknown veggie or meat ids are skipped rather than rejected; only
	// the three required components are validated.
	veggies, err := s.findItems(sel.VeggieIDs)
	if err != nil {
		return models.CustomPizzaSelection{}, 0, err
	}
	for _, v := range veggies {
		snapshot.Veggies = append(snapshot.Veggies, ingredientRef(v))
		total += v.Price
	}

	meats, err := s.findItems(sel.MeatIDs)
	if err != nil {
		return models.CustomPizzaSelection{}, 0, err
	}
	for _, m := range meats {
		snapshot.Meat = append(snapshot.Meat, ingredientRef(m))
		total += m.Price
	}

	unitPrice := roundToCents(total * SizeMultiplier(sel.Size))
	return snapshot, unitPrice, nil
}

// requireItem fetches a required ingredient and maps a missing record to
// a validation error naming the component
func (s *pricingService) requireItem(id uint, component string) (models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InventoryItem{}, fmt.Errorf("%w: invalid %s selected", ErrValidation, component)
		}
		return models.InventoryItem{}, err
	}
	return item, nil
}

func (s *pricingService) findItems(ids []uint) ([]models.InventoryItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.InventoryItem
	if err := s.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func ingredientRef(item models.InventoryItem) models.IngredientRef {
	return models.IngredientRef{ID: item.ID, Name: item.Name, Price: item.Price}
}

// roundToCents rounds to 2 decimal places (cents/paise precision)
func roundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}
