package loyalty

import (
	"math"

	"restaurant-management-api/models"

	"gorm.io/gorm"
)

// DefaultPointsPerDollar applies when a restaurant has no active program.
const DefaultPointsPerDollar = 1.0

// ActiveRate returns the accrual rate for a restaurant. Absence of an active
// loyalty program is not an error — the default rate applies.
func ActiveRate(db *gorm.DB, restaurantID uint) float64 {
	var program models.LoyaltyProgram
	err := db.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("updated_at desc").
		First(&program).Error
	if err != nil {
		return DefaultPointsPerDollar
	}
	if program.PointsPerDollar <= 0 {
		return DefaultPointsPerDollar
	}
	return program.PointsPerDollar
}

// CalculatePoints maps an order total to a point award: floor(total × rate),
// never negative. There is no error path.
func CalculatePoints(db *gorm.DB, restaurantID uint, total float64) int {
	if total <= 0 {
		return 0
	}
	rate := ActiveRate(db, restaurantID)
	return int(math.Floor(total * rate))
}

// RedemptionValue converts a point balance to dollars using the restaurant's
// active program, defaulting to one cent per point.
func RedemptionValue(db *gorm.DB, restaurantID uint, points int) float64 {
	if points <= 0 {
		return 0
	}
	rate := 0.01
	var program models.LoyaltyProgram
	err := db.Where("restaurant_id = ? AND is_active = ?", restaurantID, true).
		Order("updated_at desc").
		First(&program).Error
	if err == nil && program.RedemptionRate > 0 {
		rate = program.RedemptionRate
	}
	return float64(points) * rate
}
