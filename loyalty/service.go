package loyalty

import (
	"errors"

	"restaurant-management-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrOrderNotFound reports an unknown order ID.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInsufficientPoints reports a redemption larger than the balance.
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)

// Service applies loyalty bookkeeping when orders are served. It replaces
// what would otherwise be a database trigger with an explicit listener so the
// behavior is visible and testable in application code.
type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log}
}

// RecordServed transitions an order into SERVED and applies its loyalty
// snapshot exactly once, all inside one transaction.
//
// The status update is guarded (`status <> SERVED`), so a repeated save is a
// no-op: zero rows moved means the snapshot was already applied and the call
// returns the order unchanged. An order with no linked profile still
// transitions; the counter update simply affects zero rows.
func (s *Service) RecordServed(orderID uint, actorID uint, note string) (*models.Order, error) {
	var order models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		prev := order.Status
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status <> ?", orderID, models.StatusServed).
			Update("status", models.StatusServed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already served — nothing to apply.
			s.log.Debug("order already served, skipping accrual",
				zap.Uint("order_id", orderID))
			return nil
		}

		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prev,
			ToStatus:   models.StatusServed,
			ChangedBy:  actorID,
			Note:       note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		if order.ProfileID == nil {
			// Walk-in with no profile: the order is served, no accrual.
			order.Status = models.StatusServed
			return nil
		}

		net := order.LoyaltyPointsEarned - order.LoyaltyPointsUsed
		if err := tx.Model(&models.CustomerProfile{}).
			Where("id = ?", *order.ProfileID).
			Updates(map[string]interface{}{
				"total_visits":   gorm.Expr("total_visits + ?", 1),
				"total_spent":    gorm.Expr("total_spent + ?", order.TotalPrice),
				"loyalty_points": gorm.Expr("loyalty_points + ?", net),
			}).Error; err != nil {
			return err
		}

		if order.LoyaltyPointsEarned > 0 {
			event := models.PointEvent{
				ProfileID:    *order.ProfileID,
				RestaurantID: order.RestaurantID,
				OrderID:      &order.ID,
				Kind:         models.PointsEarned,
				Delta:        order.LoyaltyPointsEarned,
				Note:         "points earned on served order",
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}
		if order.LoyaltyPointsUsed > 0 {
			event := models.PointEvent{
				ProfileID:    *order.ProfileID,
				RestaurantID: order.RestaurantID,
				OrderID:      &order.ID,
				Kind:         models.PointsRedeemed,
				Delta:        -order.LoyaltyPointsUsed,
				Note:         "points redeemed against order",
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		order.Status = models.StatusServed
		s.log.Info("loyalty applied for served order",
			zap.Uint("order_id", order.ID),
			zap.Uintp("profile_id", order.ProfileID),
			zap.Int("points_net", net))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Redeem deducts points from a profile balance outside of an order (e.g. a
// counter redemption) and appends a ledger row. The decrement is guarded by
// the balance check in the same UPDATE, so concurrent redemptions cannot
// overdraw.
func (s *Service) Redeem(profileID, restaurantID uint, points int, note string) error {
	if points <= 0 {
		return errors.New("points must be positive")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CustomerProfile{}).
			Where("id = ? AND loyalty_points >= ?", profileID, points).
			Update("loyalty_points", gorm.Expr("loyalty_points - ?", points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientPoints
		}
		event := models.PointEvent{
			ProfileID:    profileID,
			RestaurantID: restaurantID,
			Kind:         models.PointsRedeemed,
			Delta:        -points,
			Note:         note,
		}
		return tx.Create(&event).Error
	})
}
