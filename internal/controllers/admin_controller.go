package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"github.com/franciscosanchezn/pizza-delivery-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminController backs the administrative console: dashboard, inventory
// and menu management, user listing
type AdminController interface {
	Dashboard(ctx *gin.Context)
	ListInventory(ctx *gin.Context)
	CreateInventoryItem(ctx *gin.Context)
	UpdateInventoryItem(ctx *gin.Context)
	DeleteInventoryItem(ctx *gin.Context)
	ListPizzas(ctx *gin.Context)
	CreatePizza(ctx *gin.Context)
	UpdatePizza(ctx *gin.Context)
	DeletePizza(ctx *gin.Context)
	ListUsers(ctx *gin.Context)
}

type adminController struct {
	admin     services.AdminService
	inventory services.InventoryService
	pizzas    services.PizzaService
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(admin services.AdminService, inventory services.InventoryService, pizzas services.PizzaService) AdminController {
	return &adminController{admin: admin, inventory: inventory, pizzas: pizzas}
}

// Dashboard godoc
// @Summary Aggregate counts for the admin landing page
// @Tags admin
// @Produce json
// @Success 200 {object} services.DashboardData
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (c *adminController) Dashboard(ctx *gin.Context) {
	data, err := c.admin.Dashboard()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, data)
}

func (c *adminController) ListInventory(ctx *gin.Context) {
	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", 10)

	items, total, err := c.inventory.ListItems(ctx.Query("itemType"), page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	ctx.JSON(http.StatusOK, gin.H{
		"items":       items,
		"totalPages":  totalPages,
		"currentPage": page,
		"total":       total,
	})
}

func (c *adminController) CreateInventoryItem(ctx *gin.Context) {
	var item models.InventoryItem
	if err := ctx.ShouldBindJSON(&item); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := c.inventory.CreateItem(item)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Inventory item added successfully", "item": created})
}

func (c *adminController) UpdateInventoryItem(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var updates services.InventoryItemUpdate
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := c.inventory.UpdateItem(id, updates)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Inventory item updated successfully", "item": item})
}

func (c *adminController) DeleteInventoryItem(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.inventory.DeleteItem(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}

func (c *adminController) ListPizzas(ctx *gin.Context) {
	pizzas, err := c.pizzas.GetAllPizzas()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pizzas)
}

func (c *adminController) CreatePizza(ctx *gin.Context) {
	var pizza models.Pizza
	if err := ctx.ShouldBindJSON(&pizza); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := c.pizzas.CreatePizza(pizza)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Pizza added successfully", "pizza": created})
}

func (c *adminController) UpdatePizza(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var updates services.PizzaUpdate
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pizza, err := c.pizzas.UpdatePizza(id, updates)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Pizza updated successfully", "pizza": pizza})
}

func (c *adminController) DeletePizza(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.pizzas.DeletePizza(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Pizza deleted successfully"})
}

func (c *adminController) ListUsers(ctx *gin.Context) {
	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", 10)

	users, err := c.admin.ListUsers(page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}
