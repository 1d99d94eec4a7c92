package models

import "time"

type Restaurant struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OwnerID     uint        `json:"owner_id" gorm:"not null"`
	Owner       User        `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name        string      `json:"name" gorm:"not null"`
	Cuisine     string      `json:"cuisine"`
	Address     string      `json:"address"`
	Description string      `json:"description"`
	IsOpen      bool        `json:"is_open" gorm:"default:true"`
	TableCount  int         `json:"table_count" gorm:"default:10"`
	MenuItems   []MenuItem  `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	StaffRoles  []StaffRole `json:"staff_roles,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	Category     string    `json:"category"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	IsVeg        bool      `json:"is_veg" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StaffRole is a named position at one restaurant. Four defaults are seeded
// when the restaurant is created; owners can adjust rates and permissions
// afterwards. Permissions is a comma-separated flag set, opaque to this
// service beyond exact matching.
type StaffRole struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Permissions  string    `json:"permissions"`
	HourlyRate   float64   `json:"hourly_rate"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StaffMember links a user account to a restaurant with a role.
type StaffMember struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	UserID       uint      `json:"user_id" gorm:"not null"`
	User         User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	StaffRoleID  uint      `json:"staff_role_id" gorm:"not null"`
	StaffRole    StaffRole `json:"staff_role,omitempty" gorm:"foreignKey:StaffRoleID"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoyaltyProgram configures point accrual for one restaurant. At most one
// active row per restaurant is consulted; with none, accrual defaults to
// 1 point per dollar.
//
// No `default` tags here: GORM omits zero-value fields carrying a default on
// insert, which would silently store IsActive=false rows as active.
type LoyaltyProgram struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	RestaurantID    uint      `json:"restaurant_id" gorm:"not null;index"`
	Name            string    `json:"name"`
	PointsPerDollar float64   `json:"points_per_dollar" gorm:"not null"`
	RedemptionRate  float64   `json:"redemption_rate" gorm:"not null"` // dollars per point
	IsActive        bool      `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
