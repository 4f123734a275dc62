package services

import (
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
	"gorm.io/gorm"
)

// InventoryItemUpdate carries the fields of an admin inventory edit.
// Pointer fields distinguish "not provided" from explicit zero values,
// so stock can be zeroed and items can be disabled.
type InventoryItemUpdate struct {
	Name              *string  `json:"name"`
	ItemType          *string  `json:"itemType"`
	Price             *float64 `json:"price"`
	StockQuantity     *int     `json:"stockQuantity"`
	ThresholdQuantity *int     `json:"thresholdQuantity"`
	Unit              *string  `json:"unit"`
	Category          *string  `json:"category"`
	Description       *string  `json:"description"`
	IsAvailable       *bool    `json:"isAvailable"`
}

// InventoryService manages ingredient inventory records
type InventoryService interface {
	// ListItems returns inventory items, optionally filtered by item type,
	// with page/limit pagination. Also returns the total matching count.
	ListItems(itemType string, page, limit int) ([]models.InventoryItem, int64, error)
	// GetItemByID retrieves a single inventory item
	GetItemByID(id uint) (models.InventoryItem, error)
	// CreateItem validates and persists a new inventory item
	CreateItem(item models.InventoryItem) (models.InventoryItem, error)
	// UpdateItem applies the provided fields onto an existing item. Nil
	// fields are left unchanged; explicit zero and false values are written.
	UpdateItem(id uint, in InventoryItemUpdate) (models.InventoryItem, error)
	// DeleteItem removes an inventory item
	DeleteItem(id uint) error
	// GetCustomizationOptions groups available items by type for the builder UI
	GetCustomizationOptions() (models.CustomizationOptions, error)
	// LowStockItems returns items at or below their reorder threshold
	LowStockItems() ([]models.InventoryItem, error)
	// DecrementForOrder decrements stock for every ingredient referenced by
	// the order's custom pizza lines. Catalog menu lines are not linked to
	// inventory and are skipped. The decrement is unconditional.
	DecrementForOrder(order *models.Order) error
}

type inventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new instance of InventoryService
func NewInventoryService(db *gorm.DB) InventoryService {
	return &inventoryService{db: db}
}

func (s *inventoryService) ListItems(itemType string, page, limit int) ([]models.InventoryItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.Model(&models.InventoryItem{})
	if itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.InventoryItem
	if err := query.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *inventoryService) GetItemByID(id uint) (models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InventoryItem{}, fmt.Errorf("%w: inventory item %d", ErrNotFound, id)
		}
		return models.InventoryItem{}, err
	}
	return item, nil
}

func (s *inventoryService) CreateItem(item models.InventoryItem) (models.InventoryItem, error) {
	if err := validateInventoryItem(&item); err != nil {
		return models.InventoryItem{}, err
	}
	if err := s.db.Create(&item).Error; err != nil {
		return models.InventoryItem{}, err
	}
	return item, nil
}

func (s *inventoryService) UpdateItem(id uint, in InventoryItemUpdate) (models.InventoryItem, error) {
	item, err := s.GetItemByID(id)
	if err != nil {
		return models.InventoryItem{}, err
	}

	// Map-based updates so zero and false values reach the database
	values := map[string]interface{}{}
	if in.Name != nil {
		if len(*in.Name) < 2 {
			return models.InventoryItem{}, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
		}
		values["name"] = *in.Name
	}
	if in.ItemType != nil {
		if !models.ValidItemType(*in.ItemType) {
			return models.InventoryItem{}, fmt.Errorf("%w: invalid item type %q", ErrValidation, *in.ItemType)
		}
		values["item_type"] = *in.ItemType
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return models.InventoryItem{}, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		values["price"] = *in.Price
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return models.InventoryItem{}, fmt.Errorf("%w: stock quantity must be a positive integer", ErrValidation)
		}
		values["stock_quantity"] = *in.StockQuantity
	}
	if in.ThresholdQuantity != nil {
		if *in.ThresholdQuantity < 0 {
			return models.InventoryItem{}, fmt.Errorf("%w: threshold quantity must be a positive integer", ErrValidation)
		}
		values["threshold_quantity"] = *in.ThresholdQuantity
	}
	if in.Unit != nil {
		values["unit"] = *in.Unit
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return models.InventoryItem{}, fmt.Errorf("%w: invalid category %q", ErrValidation, *in.Category)
		}
		values["category"] = *in.Category
	}
	if in.Description != nil {
		values["description"] = *in.Description
	}
	if in.IsAvailable != nil {
		values["is_available"] = *in.IsAvailable
	}

	if len(values) == 0 {
		return item, nil
	}
	if err := s.db.Model(&item).Updates(values).Error; err != nil {
		return models.InventoryItem{}, err
	}
	return s.GetItemByID(id)
}

func (s *inventoryService) DeleteItem(id uint) error {
	result := s.db.Delete(&models.InventoryItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: inventory item %d", ErrNotFound, id)
	}
	return nil
}

func (s *inventoryService) GetCustomizationOptions() (models.CustomizationOptions, error) {
	var options models.CustomizationOptions

	lookups := []struct {
		itemType string
		dest     *[]models.InventoryItem
	}{
		{models.ItemTypeBase, &options.Bases},
		{models.ItemTypeSauce, &options.Sauces},
		{models.ItemTypeCheese, &options.Cheeses},
		{models.ItemTypeVeggie, &options.Veggies},
		{models.ItemTypeMeat, &options.Meats},
	}
	for _, l := range lookups {
		if err := s.db.Where("item_type = ? AND is_available = ?", l.itemType, true).Find(l.dest).Error; err != nil {
			return models.CustomizationOptions{}, err
		}
	}
	return options, nil
}

func (s *inventoryService) LowStockItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.Where("stock_quantity <= threshold_quantity").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *inventoryService) DecrementForOrder(order *models.Order) error {
	for _, line := range order.Items {
		if !line.IsCustom() {
			continue
		}
		sel := line.CustomPizza.Data()

		ids := []uint{sel.Base.ID, sel.Sauce.ID, sel.Cheese.ID}
		for _, v := range sel.Veggies {
			ids = append(ids, v.ID)
		}
		for _, m := range sel.Meat {
			ids = append(ids, m.ID)
		}

		if err := s.db.Model(&models.InventoryItem{}).
			Where("id IN ?", ids).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity)).Error; err != nil {
			return fmt.Errorf("failed to decrement inventory for order %s: %w", order.OrderNumber, err)
		}
	}
	return nil
}

func validateInventoryItem(item *models.InventoryItem) error {
	if len(item.Name) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	if !models.ValidItemType(item.ItemType) {
		return fmt.Errorf("%w: invalid item type %q", ErrValidation, item.ItemType)
	}
	if item.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if item.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity must be a positive integer", ErrValidation)
	}
	if item.ThresholdQuantity < 0 {
		return fmt.Errorf("%w: threshold quantity must be a positive integer", ErrValidation)
	}
	if !models.ValidCategory(item.Category) {
		return fmt.Errorf("%w: invalid category %q", ErrValidation, item.Category)
	}
	return nil
}
