package handlers

import (
	"net/http"

	"restaurant-management-api/config"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateInventoryItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorder_level"`
	CostPerUnit  float64 `json:"cost_per_unit"`
	Supplier     string  `json:"supplier"`
}

// AddInventoryItem registers a stock item for the restaurant
func AddInventoryItem(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var req CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := models.InventoryItem{
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
		CostPerUnit:  req.CostPerUnit,
		Supplier:     req.Supplier,
	}
	if item.Unit == "" {
		item.Unit = "unit"
	}
	if err := config.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add inventory item"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Inventory item added", "item": item})
}

// ListInventory returns the restaurant's stock, flagging low items
func ListInventory(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var items []models.InventoryItem
	query := config.DB.Where("restaurant_id = ?", restaurant.ID)
	if c.Query("low") == "true" {
		query = query.Where("quantity <= reorder_level")
	}
	query.Order("name").Find(&items)

	lowCount := 0
	for _, item := range items {
		if item.Quantity <= item.ReorderLevel {
			lowCount++
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "low_stock_count": lowCount, "items": items})
}

type AdjustStockRequest struct {
	Change float64 `json:"change" binding:"required"`
	Reason string  `json:"reason"`
}

// AdjustStock applies a stock movement and records the audit row in the same
// transaction, carrying before/after quantities.
func AdjustStock(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("itemId"), restaurant.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	before := item.Quantity
	after := before + req.Change
	if after < 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "Stock cannot go negative",
			"quantity":  before,
			"requested": req.Change,
		})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Update("quantity", after).Error; err != nil {
			return err
		}
		movement := models.StockMovement{
			InventoryItemID: item.ID,
			Change:          req.Change,
			QuantityBefore:  before,
			QuantityAfter:   after,
			Reason:          req.Reason,
			RecordedBy:      middleware.GetUserID(c),
		}
		return tx.Create(&movement).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Stock adjusted",
		"item":            item.Name,
		"quantity_before": before,
		"quantity_after":  after,
	})
}

// GetStockMovements returns the audit trail for one inventory item
func GetStockMovements(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}
	var item models.InventoryItem
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("itemId"), restaurant.ID).
		First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	var movements []models.StockMovement
	config.DB.Where("inventory_item_id = ?", item.ID).
		Order("created_at desc").
		Find(&movements)
	c.JSON(http.StatusOK, gin.H{"item": item.Name, "count": len(movements), "movements": movements})
}
