package models

import (
	"time"

	"gorm.io/datatypes"
)

// NutritionFacts holds per-pizza nutrition info for the menu display
type NutritionFacts struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Pizza represents a fixed menu item. Its ingredient list is display-only;
// menu pizzas are not linked back to inventory records.
type Pizza struct {
	ID          uint                               `gorm:"primaryKey" json:"id"`
	Name        string                             `gorm:"not null" json:"name"`
	Description string                             `json:"description"`
	BasePrice   float64                            `gorm:"not null" json:"basePrice"`
	Category    string                             `json:"category"`
	Ingredients datatypes.JSONSlice[string]        `json:"ingredients"`
	Nutrition   datatypes.JSONType[NutritionFacts] `json:"nutrition"`
	IsAvailable bool                               `gorm:"default:true" json:"isAvailable"`
	CreatedAt   time.Time                          `json:"createdAt"`
	UpdatedAt   time.Time                          `json:"updatedAt"`
}
