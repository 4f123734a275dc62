package models

import "time"

// Item types for inventory items
const (
	ItemTypeBase   = "base"
	ItemTypeSauce  = "sauce"
	ItemTypeCheese = "cheese"
	ItemTypeVeggie = "veggie"
	ItemTypeMeat   = "meat"
)

// Dietary categories shared by inventory items and menu pizzas
const (
	CategoryVegetarian    = "vegetarian"
	CategoryNonVegetarian = "non-vegetarian"
	CategoryVegan         = "vegan"
)

// ValidItemType reports whether t is a known inventory item type
func ValidItemType(t string) bool {
	switch t {
	case ItemTypeBase, ItemTypeSauce, ItemTypeCheese, ItemTypeVeggie, ItemTypeMeat:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known dietary category
func ValidCategory(c string) bool {
	switch c {
	case CategoryVegetarian, CategoryNonVegetarian, CategoryVegan:
		return true
	}
	return false
}

// InventoryItem is a priced, stock-tracked ingredient used to build custom pizzas
type InventoryItem struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"not null" json:"name"`
	ItemType          string  `gorm:"index;not null" json:"itemType"`
	Price             float64 `gorm:"not null" json:"price"`
	StockQuantity     int     `gorm:"not null;default:0" json:"stockQuantity"`
	ThresholdQuantity int     `gorm:"not null;default:0" json:"thresholdQuantity"`
	Unit              string  `json:"unit"`
	Category          string  `json:"category"`
	Description       string  `json:"description"`
	IsAvailable       bool    `gorm:"default:true" json:"isAvailable"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LowOnStock reports whether the item has fallen to or below its reorder threshold
func (i *InventoryItem) LowOnStock() bool {
	return i.StockQuantity <= i.ThresholdQuantity
}

// CustomizationOptions groups available inventory by item type for the pizza builder
type CustomizationOptions struct {
	Bases   []InventoryItem `json:"bases"`
	Sauces  []InventoryItem `json:"sauces"`
	Cheeses []InventoryItem `json:"cheeses"`
	Veggies []InventoryItem `json:"veggies"`
	Meats   []InventoryItem `json:"meats"`
}
