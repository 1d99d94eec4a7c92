package handlers

import (
	"net/http"

	"restaurant-management-api/config"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"

	"github.com/gin-gonic/gin"
)

// ownedRestaurant loads the caller's restaurant or writes a 404.
func ownedRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("owner_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	return &restaurant, true
}

// ListStaffRoles returns the restaurant's role definitions
func ListStaffRoles(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}
	var roles []models.StaffRole
	config.DB.Where("restaurant_id = ?", restaurant.ID).Order("id").Find(&roles)
	c.JSON(http.StatusOK, gin.H{"count": len(roles), "roles": roles})
}

type UpdateStaffRoleRequest struct {
	Permissions *string  `json:"permissions"`
	HourlyRate  *float64 `json:"hourly_rate"`
}

// UpdateStaffRole adjusts a role's rate or permission flags
func UpdateStaffRole(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var role models.StaffRole
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("roleId"), restaurant.ID).
		First(&role).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff role not found"})
		return
	}

	var req UpdateStaffRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := map[string]interface{}{}
	if req.Permissions != nil {
		update["permissions"] = *req.Permissions
	}
	if req.HourlyRate != nil {
		update["hourly_rate"] = *req.HourlyRate
	}
	config.DB.Model(&role).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Staff role updated", "role": role})
}

type AddStaffMemberRequest struct {
	UserID      uint `json:"user_id" binding:"required"`
	StaffRoleID uint `json:"staff_role_id" binding:"required"`
}

// AddStaffMember attaches an existing user to the restaurant with a role
func AddStaffMember(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var req AddStaffMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	var role models.StaffRole
	if err := config.DB.Where("id = ? AND restaurant_id = ?", req.StaffRoleID, restaurant.ID).
		First(&role).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff role not found for this restaurant"})
		return
	}

	member := models.StaffMember{
		RestaurantID: restaurant.ID,
		UserID:       user.ID,
		StaffRoleID:  role.ID,
		IsActive:     true,
	}
	if err := config.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add staff member"})
		return
	}
	config.DB.Preload("User").Preload("StaffRole").First(&member, member.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Staff member added", "member": member})
}

// ListStaffMembers returns the restaurant's staff with roles
func ListStaffMembers(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}
	var members []models.StaffMember
	config.DB.Preload("User").Preload("StaffRole").
		Where("restaurant_id = ?", restaurant.ID).Find(&members)
	c.JSON(http.StatusOK, gin.H{"count": len(members), "staff": members})
}

// RemoveStaffMember deactivates a staff member
func RemoveStaffMember(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}
	var member models.StaffMember
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("memberId"), restaurant.ID).
		First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}
	config.DB.Model(&member).Update("is_active", false)
	c.JSON(http.StatusOK, gin.H{"message": "Staff member deactivated"})
}
