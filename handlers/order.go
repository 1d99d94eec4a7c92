package handlers

import (
	"net/http"

	"restaurant-management-api/config"
	"restaurant-management-api/loyalty"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"
	"restaurant-management-api/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Loyalty is the accrual service, wired in main.
var Loyalty *loyalty.Service

// staffRestaurant resolves the restaurant a staff caller works at: either
// they own it or they have an active staff membership.
func staffRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	userID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", userID).First(&restaurant).Error; err == nil {
		return &restaurant, true
	}

	var member models.StaffMember
	if err := config.DB.Where("user_id = ? AND is_active = ?", userID, true).
		First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	if err := config.DB.First(&restaurant, member.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	return &restaurant, true
}

type CreateOrderRequest struct {
	TableNumber   int    `json:"table_number" binding:"required,min=1"`
	ProfileID     *uint  `json:"profile_id"`
	CustomerPhone string `json:"customer_phone"` // alternative profile lookup
	Notes         string `json:"notes"`
	RedeemPoints  int    `json:"redeem_points"`
	Items         []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// CreateOrder opens a dine-in order. The loyalty snapshot fields are fixed
// here: points earned from the bill via the restaurant's active rate, points
// used from the requested redemption capped by the profile balance. Both are
// applied to the profile only when the order is later served.
func CreateOrder(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Resolve the customer profile, if any
	var profile *models.CustomerProfile
	if req.ProfileID != nil {
		var p models.CustomerProfile
		if err := config.DB.First(&p, *req.ProfileID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer profile not found"})
			return
		}
		profile = &p
	} else if req.CustomerPhone != "" {
		var p models.CustomerProfile
		if err := config.DB.Where("phone = ?", req.CustomerPhone).First(&p).Error; err == nil {
			profile = &p
		}
		// Unknown phone is fine — the order just has no profile link.
	}

	// Build order items and calculate total
	var orderItems []models.OrderItem
	var total float64
	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		if menuItem.RestaurantID != restaurant.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this restaurant"})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		total += menuItem.Price * float64(reqItem.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   reqItem.Quantity,
			Price:      menuItem.Price,
			Name:       menuItem.Name,
		})
	}

	// Redemption: capped by balance, only meaningful with a profile
	pointsUsed := 0
	if req.RedeemPoints > 0 && profile != nil {
		pointsUsed = req.RedeemPoints
		if pointsUsed > profile.LoyaltyPoints {
			pointsUsed = profile.LoyaltyPoints
		}
		discount := loyalty.RedemptionValue(config.DB, restaurant.ID, pointsUsed)
		total -= discount
		if total < 0 {
			total = 0
		}
	}

	order := models.Order{
		RestaurantID:        restaurant.ID,
		TableNumber:         req.TableNumber,
		Status:              models.StatusPending,
		TotalPrice:          total,
		Notes:               req.Notes,
		LoyaltyPointsEarned: loyalty.CalculatePoints(config.DB, restaurant.ID, total),
		LoyaltyPointsUsed:   pointsUsed,
		Items:               orderItems,
	}
	if profile != nil {
		order.ProfileID = &profile.ID
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: middleware.GetUserID(c),
			Note:      "Order opened",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	config.DB.Preload("Items.MenuItem").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Order created", "order": order})
}

// ListOrders returns the restaurant's orders with a status summary
func ListOrders(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var orders []models.Order
	query := config.DB.Preload("Items.MenuItem").Preload("Profile").
		Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// GetOrderDetail returns a single order's full detail with history
func GetOrderDetail(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items.MenuItem").Preload("Profile").Preload("StatusHistory").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Note   string             `json:"note"`
}

// UpdateOrderStatus handles staff state transitions. The SERVED edge is
// routed through the loyalty service so the profile counters and point
// ledger update in the same transaction as the status change.
func UpdateOrderStatus(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}
	userID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "staff"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	prevStatus := order.Status

	if req.Status == models.StatusServed {
		updated, err := Loyalty.RecordServed(order.ID, userID, req.Note)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serve order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":         "Order served",
			"order_id":        updated.ID,
			"previous_status": string(prevStatus),
			"current_status":  string(updated.Status),
			"points_earned":   updated.LoyaltyPointsEarned,
			"points_used":     updated.LoyaltyPointsUsed,
		})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			ChangedBy:  userID,
			Note:       req.Note,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": string(prevStatus),
		"current_status":  string(req.Status),
	})
}

// CancelMyOrder cancels an order linked to the caller's customer profile
func CancelMyOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var profile models.CustomerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No customer profile for your account"})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.ProfileID == nil || *order.ProfileID != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	prevStatus := order.Status
	config.DB.Model(&order).Update("status", models.StatusCancelled)
	history := models.OrderStatusHistory{
		OrderID:    order.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCancelled,
		ChangedBy:  userID,
		Note:       "Order cancelled by customer",
	}
	config.DB.Create(&history)

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// GetMyOrders returns orders linked to the caller's customer profile
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var profile models.CustomerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"count": 0, "orders": []models.Order{}})
		return
	}

	var orders []models.Order
	config.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Where("profile_id = ?", profile.ID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}
