package models

import "time"

// ReservationStatus represents the lifecycle of a table reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationSeated    ReservationStatus = "SEATED"
	ReservationCompleted ReservationStatus = "COMPLETED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationNoShow    ReservationStatus = "NO_SHOW"
)

type Reservation struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	RestaurantID     uint              `json:"restaurant_id" gorm:"not null;index"`
	Restaurant       Restaurant        `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	ProfileID        *uint             `json:"profile_id" gorm:"index"`
	Profile          *CustomerProfile  `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	GuestName        string            `json:"guest_name" gorm:"not null"`
	GuestPhone       string            `json:"guest_phone"`
	PartySize        int               `json:"party_size" gorm:"not null"`
	TableNumber      int               `json:"table_number"`
	ReservedFor      time.Time         `json:"reserved_for" gorm:"not null;index"`
	Status           ReservationStatus `json:"status" gorm:"not null;default:'PENDING'"`
	ConfirmationCode string            `json:"confirmation_code" gorm:"uniqueIndex"`
	SpecialRequests  string            `json:"special_requests"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
