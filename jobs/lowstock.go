package jobs

import (
	"restaurant-management-api/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LowStockScanner periodically logs inventory items at or under their
// reorder level so managers see shortages without opening the dashboard.
type LowStockScanner struct {
	db   *gorm.DB
	log  *zap.Logger
	cron *cron.Cron
	spec string
}

// NewLowStockScanner builds a scanner; spec is a cron expression, default
// daily at 06:00.
func NewLowStockScanner(db *gorm.DB, log *zap.Logger, spec string) *LowStockScanner {
	if spec == "" {
		spec = "0 6 * * *"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LowStockScanner{db: db, log: log, cron: cron.New(), spec: spec}
}

// Start schedules the scan and begins the cron loop.
func (s *LowStockScanner) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.Scan); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop.
func (s *LowStockScanner) Stop() {
	s.cron.Stop()
}

// Scan runs one pass over all restaurants' inventory.
func (s *LowStockScanner) Scan() {
	var items []models.InventoryItem
	if err := s.db.Where("quantity <= reorder_level").Find(&items).Error; err != nil {
		s.log.Error("low stock scan failed", zap.Error(err))
		return
	}
	if len(items) == 0 {
		s.log.Info("low stock scan: all items above reorder level")
		return
	}
	for _, item := range items {
		s.log.Warn("low stock",
			zap.Uint("restaurant_id", item.RestaurantID),
			zap.String("item", item.Name),
			zap.Float64("quantity", item.Quantity),
			zap.Float64("reorder_level", item.ReorderLevel))
	}
}
