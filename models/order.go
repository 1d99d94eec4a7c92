package models

import "time"

// OrderStatus represents all possible states of a dine-in order
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusServed    OrderStatus = "SERVED"
	StatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	RestaurantID uint             `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   Restaurant       `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	ProfileID    *uint            `json:"profile_id" gorm:"index"` // nil for anonymous walk-ins
	Profile      *CustomerProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	TableNumber  int              `json:"table_number"`
	Status       OrderStatus      `json:"status" gorm:"not null;default:'PENDING'"`
	TotalPrice   float64          `json:"total_price"`
	Notes        string           `json:"notes"`

	// Loyalty snapshots, fixed at creation time and applied exactly once by
	// the loyalty service when the order transitions into SERVED.
	LoyaltyPointsEarned int `json:"loyalty_points_earned"`
	LoyaltyPointsUsed   int `json:"loyalty_points_used"`

	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    uint     `json:"order_id" gorm:"not null"`
	MenuItemID uint     `json:"menu_item_id" gorm:"not null"`
	MenuItem   MenuItem `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	Price      float64  `json:"price" gorm:"not null"` // snapshot price at time of order
	Name       string   `json:"name"`                  // snapshot name
}

// OrderStatusHistory tracks every status change — audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

// PointEventKind classifies ledger entries
type PointEventKind string

const (
	PointsEarned   PointEventKind = "earned"
	PointsRedeemed PointEventKind = "redeemed"
)

// PointEvent is the append-only loyalty ledger. The profile counters are the
// fast path; these rows are the audit trail and are never rewritten.
type PointEvent struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	ProfileID    uint           `json:"profile_id" gorm:"not null;index"`
	RestaurantID uint           `json:"restaurant_id" gorm:"not null;index"`
	OrderID      *uint          `json:"order_id"`
	Kind         PointEventKind `json:"kind" gorm:"not null"`
	Delta        int            `json:"delta" gorm:"not null"` // positive earned, negative redeemed
	Note         string         `json:"note"`
	CreatedAt    time.Time      `json:"created_at"`
}
