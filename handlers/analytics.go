package handlers

import (
	"net/http"
	"strconv"
	"time"

	"restaurant-management-api/config"
	"restaurant-management-api/models"

	"github.com/gin-gonic/gin"
)

// ── Reporting ───────────────────────────────────────────────────────────────
// Read-only aggregation queries over served orders and stock. These replace
// what a database-side reporting view would compute.

type popularityRow struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	TotalQty   int     `json:"total_qty"`
	Revenue    float64 `json:"revenue"`
}

// MenuPopularity ranks menu items by quantity across served orders
func MenuPopularity(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	limit := 10
	var rows []popularityRow
	config.DB.Model(&models.OrderItem{}).
		Select("order_items.menu_item_id, order_items.name, SUM(order_items.quantity) as total_qty, SUM(order_items.quantity * order_items.price) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.restaurant_id = ? AND orders.status = ?", restaurant.ID, models.StatusServed).
		Group("order_items.menu_item_id, order_items.name").
		Order("total_qty desc").
		Limit(limit).
		Scan(&rows)

	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant.Name, "top_items": rows})
}

type revenueRow struct {
	Day     string  `json:"day"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// RevenueTrend returns daily served-order totals over the last N days
func RevenueTrend(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	days := 30
	if d, err := strconv.Atoi(c.Query("days")); err == nil && d > 0 && d <= 365 {
		days = d
	}
	since := time.Now().AddDate(0, 0, -days)

	var rows []revenueRow
	config.DB.Model(&models.Order{}).
		Select("DATE(created_at) as day, COUNT(*) as orders, SUM(total_price) as revenue").
		Where("restaurant_id = ? AND status = ? AND created_at >= ?", restaurant.ID, models.StatusServed, since).
		Group("DATE(created_at)").
		Order("day").
		Scan(&rows)

	var total float64
	for _, r := range rows {
		total += r.Revenue
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"days":          days,
		"total_revenue": total,
		"trend":         rows,
	})
}

// OrderStatusSummary counts orders per status
func OrderStatusSummary(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	type statusRow struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	var rows []statusRow
	config.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Where("restaurant_id = ?", restaurant.ID).
		Group("status").
		Scan(&rows)
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant.Name, "summary": rows})
}

// LowStockReport lists inventory items at or under their reorder level
func LowStockReport(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var items []models.InventoryItem
	config.DB.Where("restaurant_id = ? AND quantity <= reorder_level", restaurant.ID).
		Order("quantity").
		Find(&items)
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant.Name, "count": len(items), "low_stock": items})
}
