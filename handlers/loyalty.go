package handlers

import (
	"errors"
	"net/http"

	"restaurant-management-api/config"
	"restaurant-management-api/loyalty"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"

	"github.com/gin-gonic/gin"
)

// GetMyLoyalty returns the caller's point balance and ledger
func GetMyLoyalty(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var profile models.CustomerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No customer profile for your account"})
		return
	}

	var events []models.PointEvent
	config.DB.Where("profile_id = ?", profile.ID).
		Order("created_at desc").
		Limit(50).
		Find(&events)

	c.JSON(http.StatusOK, gin.H{
		"loyalty_points": profile.LoyaltyPoints,
		"total_visits":   profile.TotalVisits,
		"total_spent":    profile.TotalSpent,
		"history":        events,
	})
}

type RedeemPointsRequest struct {
	ProfileID uint   `json:"profile_id" binding:"required"`
	Points    int    `json:"points" binding:"required,min=1"`
	Note      string `json:"note"`
}

// RedeemPoints performs a counter redemption against a profile (staff only)
func RedeemPoints(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var req RedeemPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Loyalty.Redeem(req.ProfileID, restaurant.ID, req.Points, req.Note); err != nil {
		if errors.Is(err, loyalty.ErrInsufficientPoints) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient loyalty points"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to redeem points"})
		return
	}

	value := loyalty.RedemptionValue(config.DB, restaurant.ID, req.Points)
	c.JSON(http.StatusOK, gin.H{
		"message":      "Points redeemed",
		"points":       req.Points,
		"dollar_value": value,
	})
}

// LookupCustomer finds a profile by phone for counter use (staff only)
func LookupCustomer(c *gin.Context) {
	if _, ok := staffRestaurant(c); !ok {
		return
	}
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
		return
	}
	var profile models.CustomerProfile
	if err := config.DB.Where("phone = ?", phone).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
