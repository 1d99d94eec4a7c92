package models

import "time"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleOwner    UserRole = "owner"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	Username     string   `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	Role         UserRole `json:"role" gorm:"not null;default:'customer'"`
	Phone        string   `json:"phone"`

	// Password-reset state, set by the reset-request flow and cleared on use.
	ResetToken  string     `json:"-" gorm:"index"`
	ResetExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerProfile holds loyalty bookkeeping for a diner. The aggregate
// counters (TotalVisits, TotalSpent, LoyaltyPoints) are owned by the loyalty
// service: they are only ever incremented inside the serve transaction, never
// recomputed from history. PointEvent rows carry the audit trail.
type CustomerProfile struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID *uint  `json:"user_id" gorm:"uniqueIndex"` // nil for walk-in guests
	User   *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name   string `json:"name"`

	// Phone is a pointer so profiles without one store NULL instead of ""
	// and the unique index only applies to real numbers.
	Phone         *string   `json:"phone" gorm:"uniqueIndex"`
	Email         string    `json:"email" gorm:"uniqueIndex"`
	TotalVisits   int       `json:"total_visits" gorm:"default:0"`
	TotalSpent    float64   `json:"total_spent" gorm:"default:0"`
	LoyaltyPoints int       `json:"loyalty_points" gorm:"default:0"`
	DietaryNotes  string    `json:"dietary_notes"`
	FavoriteTable string    `json:"favorite_table"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
