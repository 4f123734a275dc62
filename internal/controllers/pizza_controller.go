package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PizzaController handles the public menu and the custom pizza builder
type PizzaController interface {
	GetPizzas(ctx *gin.Context)
	GetPizzaByID(ctx *gin.Context)
	GetCustomizationOptions(ctx *gin.Context)
	CalculatePrice(ctx *gin.Context)
}

type pizzaController struct {
	pizzas    services.PizzaService
	inventory services.InventoryService
	pricing   services.PricingService
}

// NewPizzaController creates a new instance of PizzaController
func NewPizzaController(pizzas services.PizzaService, inventory services.InventoryService, pricing services.PricingService) PizzaController {
	return &pizzaController{pizzas: pizzas, inventory: inventory, pricing: pricing}
}

// GetPizzas godoc
// @Summary List available menu pizzas
// @Tags pizzas
// @Produce json
// @Success 200 {array} models.Pizza
// @Failure 500 {object} models.APIError
// @Router /pizza [get]
func (c *pizzaController) GetPizzas(ctx *gin.Context) {
	pizzas, err := c.pizzas.GetAvailablePizzas()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

// GetPizzaByID godoc
// @Summary Get a menu pizza by ID
// @Tags pizzas
// @Produce json
// @Param id path int true "Pizza ID"
// @Success 200 {object} models.Pizza
// @Failure 404 {object} models.APIError
// @Router /pizza/{id} [get]
func (c *pizzaController) GetPizzaByID(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	pizza, err := c.pizzas.GetPizzaByID(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizza)
}

// GetCustomizationOptions godoc
// @Summary Inventory grouped by item type for the pizza builder
// @Tags pizzas
// @Produce json
// @Success 200 {object} models.CustomizationOptions
// @Failure 500 {object} models.APIError
// @Router /pizza/customization/options [get]
func (c *pizzaController) GetCustomizationOptions(ctx *gin.Context) {
	options, err := c.inventory.GetCustomizationOptions()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, options)
}

// CalculatePrice godoc
// @Summary Calculate the price of a custom pizza selection
// @Tags pizzas
// @Accept json
// @Produce json
// @Param selection body services.PriceSelection true "Custom pizza selection"
// @Success 200 {object} services.PriceQuote
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /pizza/customization/calculate-price [post]
func (c *pizzaController) CalculatePrice(ctx *gin.Context) {
	var sel services.PriceSelection
	if err := ctx.ShouldBindJSON(&sel); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	quote, err := c.pricing.CalculatePrice(sel)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quote)
}
