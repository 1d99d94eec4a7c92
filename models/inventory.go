package models

import "time"

type InventoryItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Unit         string    `json:"unit" gorm:"default:'unit'"` // kg, liter, unit, ...
	Quantity     float64   `json:"quantity" gorm:"default:0"`
	ReorderLevel float64   `json:"reorder_level" gorm:"default:0"`
	CostPerUnit  float64   `json:"cost_per_unit"`
	Supplier     string    `json:"supplier"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StockMovement records every inventory adjustment with before/after
// quantities so stock history can be audited.
type StockMovement struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	InventoryItemID uint      `json:"inventory_item_id" gorm:"not null;index"`
	Change          float64   `json:"change" gorm:"not null"` // positive restock, negative usage
	QuantityBefore  float64   `json:"quantity_before"`
	QuantityAfter   float64   `json:"quantity_after"`
	Reason          string    `json:"reason"`
	RecordedBy      uint      `json:"recorded_by"` // user ID
	CreatedAt       time.Time `json:"created_at"`
}
