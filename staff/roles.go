package staff

import (
	"restaurant-management-api/models"

	"gorm.io/gorm"
)

// DefaultRoles returns the four positions every new restaurant starts with.
func DefaultRoles() []models.StaffRole {
	return []models.StaffRole{
		{Name: "Manager", Permissions: "orders,menu,staff,inventory,reports,loyalty", HourlyRate: 25.0},
		{Name: "Waiter", Permissions: "orders,reservations", HourlyRate: 15.0},
		{Name: "Chef", Permissions: "orders,inventory", HourlyRate: 20.0},
		{Name: "Cashier", Permissions: "orders,payments", HourlyRate: 16.0},
	}
}

// SeedDefaultRoles inserts the default role set for a restaurant. Guarded:
// if the restaurant already has any roles, nothing is inserted, so a
// re-created or re-saved restaurant cannot end up with duplicates.
func SeedDefaultRoles(tx *gorm.DB, restaurantID uint) error {
	var count int64
	if err := tx.Model(&models.StaffRole{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := DefaultRoles()
	for i := range roles {
		roles[i].RestaurantID = restaurantID
	}
	return tx.Create(&roles).Error
}
