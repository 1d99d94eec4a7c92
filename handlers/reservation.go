package handlers

import (
	"net/http"
	"time"

	"restaurant-management-api/config"
	"restaurant-management-api/middleware"
	"restaurant-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RestaurantID    uint      `json:"restaurant_id" binding:"required"`
	GuestName       string    `json:"guest_name" binding:"required"`
	GuestPhone      string    `json:"guest_phone"`
	PartySize       int       `json:"party_size" binding:"required,min=1"`
	ReservedFor     time.Time `json:"reserved_for" binding:"required"`
	SpecialRequests string    `json:"special_requests"`
}

// CreateReservation books a table. Authenticated customers get the
// reservation linked to their profile; the confirmation code is a uuid.
func CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is not taking reservations right now"})
		return
	}
	if req.ReservedFor.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reservation time must be in the future"})
		return
	}

	reservation := models.Reservation{
		RestaurantID:     restaurant.ID,
		GuestName:        req.GuestName,
		GuestPhone:       req.GuestPhone,
		PartySize:        req.PartySize,
		ReservedFor:      req.ReservedFor,
		Status:           models.ReservationPending,
		ConfirmationCode: uuid.NewString(),
		SpecialRequests:  req.SpecialRequests,
	}

	userID := middleware.GetUserID(c)
	var profile models.CustomerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		reservation.ProfileID = &profile.ID
	}

	if err := config.DB.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reservation created", "reservation": reservation})
}

// GetMyReservations lists reservations linked to the caller's profile
func GetMyReservations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var profile models.CustomerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"count": 0, "reservations": []models.Reservation{}})
		return
	}
	var reservations []models.Reservation
	config.DB.Preload("Restaurant").
		Where("profile_id = ?", profile.ID).
		Order("reserved_for desc").
		Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

// CancelMyReservation cancels one of the caller's reservations
func CancelMyReservation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var profile models.CustomerProfile
	if err := config.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No customer profile for your account"})
		return
	}
	var reservation models.Reservation
	if err := config.DB.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	if reservation.ProfileID == nil || *reservation.ProfileID != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This reservation does not belong to you"})
		return
	}
	if reservation.Status == models.ReservationCompleted || reservation.Status == models.ReservationCancelled {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Reservation can no longer be cancelled"})
		return
	}
	config.DB.Model(&reservation).Update("status", models.ReservationCancelled)
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled", "reservation_id": reservation.ID})
}

// ListReservations returns the restaurant's reservations, optionally for one day
func ListReservations(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var reservations []models.Reservation
	query := config.DB.Preload("Profile").Where("restaurant_id = ?", restaurant.ID)
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("reserved_for >= ? AND reserved_for < ?", day, day.AddDate(0, 0, 1))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Order("reserved_for").Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

type UpdateReservationStatusRequest struct {
	Status      models.ReservationStatus `json:"status" binding:"required"`
	TableNumber int                      `json:"table_number"`
}

// UpdateReservationStatus moves a reservation through its lifecycle
func UpdateReservationStatus(c *gin.Context) {
	restaurant, ok := staffRestaurant(c)
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).
		First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	var req UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid := map[models.ReservationStatus]bool{
		models.ReservationConfirmed: true,
		models.ReservationSeated:    true,
		models.ReservationCompleted: true,
		models.ReservationCancelled: true,
		models.ReservationNoShow:    true,
	}
	if !valid[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation status"})
		return
	}

	update := map[string]interface{}{"status": req.Status}
	if req.TableNumber > 0 {
		update["table_number"] = req.TableNumber
	}
	config.DB.Model(&reservation).Updates(update)
	c.JSON(http.StatusOK, gin.H{"message": "Reservation updated", "reservation": reservation})
}
